package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_registrations_total",
		Help: "Successful patient registrations.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_logins_total",
		Help: "Successful logins by role.",
	}, []string{"role"})

	BookingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_appointments_booked_total",
		Help: "Appointments booked.",
	})

	CancellationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_appointments_cancelled_total",
		Help: "Appointment cancel operations, including idempotent repeats.",
	})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_notification_failures_total",
		Help: "Best-effort notifications that were dropped.",
	})
)

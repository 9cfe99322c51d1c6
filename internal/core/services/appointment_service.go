package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
	"github.com/nextgen-care/clinic-service/internal/observability"
)

// AppointmentService owns the appointment lifecycle: Booked at creation,
// a single one-way transition to Cancelled, and no physical deletes.
type AppointmentService struct {
	store    ports.RecordStore
	notifier ports.NotificationSink
	validate *validator.Validate
}

var _ ports.AppointmentService = (*AppointmentService)(nil)

func NewAppointmentService(store ports.RecordStore, notifier ports.NotificationSink, validate *validator.Validate) *AppointmentService {
	return &AppointmentService{store: store, notifier: notifier, validate: validate}
}

// Book performs no conflict checking against existing bookings for the same
// doctor, date and time. Double booking a slot is allowed; do not add
// availability checks here.
func (s *AppointmentService) Book(ctx context.Context, p domain.Principal, in ports.BookingInput) (domain.Appointment, error) {
	if !p.IsPatient() {
		return domain.Appointment{}, domain.ErrUnauthorized
	}
	if err := s.validate.Struct(in); err != nil {
		return domain.Appointment{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	appt := domain.Appointment{
		ID:           uuid.NewString(),
		PatientID:    p.PatientID,
		PatientEmail: p.Email,
		Doctor:       in.Doctor,
		Date:         in.Date,
		Time:         in.Time,
		Status:       domain.StatusBooked,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Put(ctx, ports.Appointments, appt.Item()); err != nil {
		return domain.Appointment{}, err
	}

	observability.BookingsTotal.Inc()
	notify(ctx, s.notifier, "appointment.booked", "appointment "+appt.ID+" booked with "+appt.Doctor)
	return appt, nil
}

// ListForPatient scans the whole collection and filters client-side; the
// store offers no indexed queries. Order is unspecified.
func (s *AppointmentService) ListForPatient(ctx context.Context, p domain.Principal) ([]domain.Appointment, error) {
	if !p.IsPatient() {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.store.ScanAll(ctx, ports.Appointments)
	if err != nil {
		return nil, err
	}

	var mine []domain.Appointment
	for _, it := range items {
		appt := domain.AppointmentFromItem(it)
		if appt.PatientID == p.PatientID {
			mine = append(mine, appt)
		}
	}
	return mine, nil
}

// Cancel flips the status to Cancelled regardless of the current status, so
// a second cancel of the same id is a no-op success. Only the owning patient
// or the administrator may cancel.
func (s *AppointmentService) Cancel(ctx context.Context, p domain.Principal, id string) error {
	if p.IsAnonymous() {
		return domain.ErrUnauthorized
	}

	it, err := s.store.Get(ctx, ports.Appointments, id)
	if err != nil {
		return err
	}

	if !p.IsAdmin() && domain.AppointmentFromItem(it).PatientID != p.PatientID {
		return domain.ErrUnauthorized
	}

	if err := s.store.UpdateField(ctx, ports.Appointments, id, "status", string(domain.StatusCancelled)); err != nil {
		return err
	}

	observability.CancellationsTotal.Inc()
	return nil
}

func (s *AppointmentService) ListAll(ctx context.Context, p domain.Principal) ([]domain.Appointment, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.store.ScanAll(ctx, ports.Appointments)
	if err != nil {
		return nil, err
	}

	appts := make([]domain.Appointment, len(items))
	for i, it := range items {
		appts[i] = domain.AppointmentFromItem(it)
	}
	return appts, nil
}

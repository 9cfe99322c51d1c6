package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/nextgen-care/clinic-service/internal/adapters/session"
	"github.com/nextgen-care/clinic-service/internal/adapters/store/memory"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
	"github.com/nextgen-care/clinic-service/internal/core/services"
)

func newAppointmentService(t *testing.T) (*services.AppointmentService, *memory.Store, *MockSink) {
	t.Helper()
	store := memory.New()
	sink := NewMockSink()
	return services.NewAppointmentService(store, sink, validator.New()), store, sink
}

func booking() ports.BookingInput {
	return ports.BookingInput{Doctor: "Dr. Lee", Date: "2024-05-01", Time: "10:00"}
}

func TestBook(t *testing.T) {
	svc, _, sink := newAppointmentService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, patientPrincipal, booking())
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	if appt.Status != domain.StatusBooked {
		t.Errorf("expected initial status Booked, got %s", appt.Status)
	}
	if appt.PatientID != patientPrincipal.PatientID {
		t.Errorf("appointment not owned by the booking patient: %+v", appt)
	}
	if appt.PatientEmail != patientPrincipal.Email || appt.Doctor != "Dr. Lee" {
		t.Errorf("snapshot fields not captured: %+v", appt)
	}
	if appt.CreatedAt.IsZero() {
		t.Error("expected a created_at timestamp")
	}

	if sink.Count() != 1 {
		t.Errorf("expected 1 booking notification, got %d", sink.Count())
	}
}

// Double-booking the same doctor, date and time must succeed; there is no
// conflict checking.
func TestBook_NoConflictChecking(t *testing.T) {
	svc, _, _ := newAppointmentService(t)
	ctx := context.Background()

	if _, err := svc.Book(ctx, patientPrincipal, booking()); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if _, err := svc.Book(ctx, patientPrincipal, booking()); err != nil {
		t.Errorf("identical second booking must succeed, got %v", err)
	}

	appts, _ := svc.ListForPatient(ctx, patientPrincipal)
	if len(appts) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(appts))
	}
}

func TestBook_RequiresPatientRole(t *testing.T) {
	svc, _, _ := newAppointmentService(t)
	ctx := context.Background()

	for _, p := range []domain.Principal{{}, adminPrincipal} {
		if _, err := svc.Book(ctx, p, booking()); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Book as %+v: expected ErrUnauthorized, got %v", p, err)
		}
	}
}

func TestListForPatient_FiltersByOwner(t *testing.T) {
	svc, _, _ := newAppointmentService(t)
	ctx := context.Background()

	other := domain.Principal{Role: domain.RolePatient, PatientID: "p-2", Email: "bob@example.com"}

	if _, err := svc.Book(ctx, patientPrincipal, booking()); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}
	if _, err := svc.Book(ctx, other, booking()); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	mine, err := svc.ListForPatient(ctx, patientPrincipal)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(mine) != 1 || mine[0].PatientID != patientPrincipal.PatientID {
		t.Errorf("expected only the owner's appointment, got %+v", mine)
	}
}

func TestListForPatient_AnonymousDenied(t *testing.T) {
	svc, _, _ := newAppointmentService(t)

	if _, err := svc.ListForPatient(context.Background(), domain.Principal{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for anonymous caller, got %v", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	svc, _, _ := newAppointmentService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, patientPrincipal, booking())
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	if err := svc.Cancel(ctx, patientPrincipal, appt.ID); err != nil {
		t.Fatalf("unexpected cancel error: %v", err)
	}
	if err := svc.Cancel(ctx, patientPrincipal, appt.ID); err != nil {
		t.Errorf("second cancel must be a no-op success, got %v", err)
	}

	appts, _ := svc.ListForPatient(ctx, patientPrincipal)
	if len(appts) != 1 {
		t.Fatalf("cancel must never delete the record; have %d", len(appts))
	}
	if appts[0].Status != domain.StatusCancelled {
		t.Errorf("expected status Cancelled, got %s", appts[0].Status)
	}
}

func TestCancel_AbsentID(t *testing.T) {
	svc, _, _ := newAppointmentService(t)

	if err := svc.Cancel(context.Background(), patientPrincipal, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newAppointmentService(t)
	ctx := context.Background()

	appt, err := svc.Book(ctx, patientPrincipal, booking())
	if err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	other := domain.Principal{Role: domain.RolePatient, PatientID: "p-2", Email: "bob@example.com"}
	if err := svc.Cancel(ctx, other, appt.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("a stranger must not cancel someone else's appointment, got %v", err)
	}

	if err := svc.Cancel(ctx, domain.Principal{}, appt.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous cancel must be denied, got %v", err)
	}

	// Administrators are exempt from the ownership check.
	if err := svc.Cancel(ctx, adminPrincipal, appt.ID); err != nil {
		t.Errorf("admin cancel should succeed, got %v", err)
	}
}

// Booking snapshots the doctor reference; later roster edits must not rewrite
// appointment history.
func TestBook_SnapshotSurvivesRosterEdit(t *testing.T) {
	store := memory.New()
	sink := NewMockSink()
	validate := validator.New()
	appts := services.NewAppointmentService(store, sink, validate)
	roster := services.NewRosterService(store, sink, validate)
	ctx := context.Background()

	doctor, err := roster.AddDoctor(ctx, adminPrincipal, drKim())
	if err != nil {
		t.Fatalf("unexpected add error: %v", err)
	}

	in := booking()
	in.Doctor = doctor.Name
	if _, err := appts.Book(ctx, patientPrincipal, in); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	if _, err := roster.UpdateDoctor(ctx, adminPrincipal, doctor.ID, ports.DoctorInput{
		Name:            "Dr. Renamed",
		Specialty:       "Cardiology",
		YearsExperience: "5",
	}); err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}

	mine, _ := appts.ListForPatient(ctx, patientPrincipal)
	if len(mine) != 1 || mine[0].Doctor != "Dr. Kim" {
		t.Errorf("snapshot must keep the booking-time doctor name, got %+v", mine)
	}
}

// TestPatientJourney walks the whole flow against one shared store: register,
// authenticate, start a session, book, list, cancel, list again.
func TestPatientJourney(t *testing.T) {
	store := memory.New()
	sink := NewMockSink()
	validate := validator.New()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	identity := services.NewIdentityService(store, sink, validate, testAdminEmail, string(hash))
	sessions := services.NewSessionService(session.NewMemoryStore(), []byte("journey-secret"))
	appts := services.NewAppointmentService(store, sink, validate)

	if _, err := identity.Register(ctx, aliceInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	patient, err := identity.AuthenticatePatient(ctx, "alice@example.com", "pw1234")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	token, err := sessions.Issue(ctx, domain.Principal{
		Role:      domain.RolePatient,
		PatientID: patient.ID,
		Email:     patient.Email,
	})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	principal, err := sessions.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}

	appt, err := appts.Book(ctx, principal, ports.BookingInput{
		Doctor: "Dr. Lee", Date: "2024-05-01", Time: "10:00",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	mine, err := appts.ListForPatient(ctx, principal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != domain.StatusBooked {
		t.Fatalf("expected one Booked appointment, got %+v", mine)
	}

	if err := appts.Cancel(ctx, principal, appt.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	mine, err = appts.ListForPatient(ctx, principal)
	if err != nil {
		t.Fatalf("relist: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != domain.StatusCancelled {
		t.Errorf("expected the appointment to remain, Cancelled, got %+v", mine)
	}
}

func TestListAll_AdminOnly(t *testing.T) {
	svc, _, _ := newAppointmentService(t)
	ctx := context.Background()

	if _, err := svc.Book(ctx, patientPrincipal, booking()); err != nil {
		t.Fatalf("unexpected book error: %v", err)
	}

	all, err := svc.ListAll(ctx, adminPrincipal)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 appointment, got %d", len(all))
	}

	if _, err := svc.ListAll(ctx, patientPrincipal); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for patient role, got %v", err)
	}
}

package ports

import (
	"context"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
)

type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	DateOfBirth     string `json:"date_of_birth" validate:"required"`
	BloodType       string `json:"blood_type"`
	Allergies       string `json:"allergies"`
	KnownConditions string `json:"known_conditions"`
}

type ProfileUpdateInput struct {
	Name            string `json:"name" validate:"required"`
	BloodType       string `json:"blood_type"`
	Allergies       string `json:"allergies"`
	KnownConditions string `json:"known_conditions"`
}

// DoctorInput carries years_experience as the raw form value; the roster
// service owns parsing it into a non-negative integer.
type DoctorInput struct {
	Name            string `json:"name" validate:"required"`
	Specialty       string `json:"specialty" validate:"required"`
	YearsExperience string `json:"years_experience" validate:"required"`
	ImageRef        string `json:"image_ref"`
}

type BookingInput struct {
	Doctor string `json:"doctor" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
}

type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type IdentityService interface {
	Register(ctx context.Context, in RegisterInput) (domain.Patient, error)
	AuthenticatePatient(ctx context.Context, email, password string) (domain.Patient, error)
	AuthenticateAdministrator(ctx context.Context, identifier, password string) error
	GetProfile(ctx context.Context, p domain.Principal) (domain.Patient, error)
	UpdateProfile(ctx context.Context, p domain.Principal, in ProfileUpdateInput) (domain.Patient, error)
	ListPatients(ctx context.Context, p domain.Principal) ([]domain.Patient, error)
}

type RosterService interface {
	AddDoctor(ctx context.Context, p domain.Principal, in DoctorInput) (domain.Doctor, error)
	UpdateDoctor(ctx context.Context, p domain.Principal, id string, in DoctorInput) (domain.Doctor, error)
	RemoveDoctor(ctx context.Context, p domain.Principal, id string) error
	GetDoctor(ctx context.Context, id string) (domain.Doctor, error)
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
}

type AppointmentService interface {
	Book(ctx context.Context, p domain.Principal, in BookingInput) (domain.Appointment, error)
	ListForPatient(ctx context.Context, p domain.Principal) ([]domain.Appointment, error)
	Cancel(ctx context.Context, p domain.Principal, id string) error
	ListAll(ctx context.Context, p domain.Principal) ([]domain.Appointment, error)
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (domain.ContactMessage, error)
	ListAll(ctx context.Context, p domain.Principal) ([]domain.ContactMessage, error)
}

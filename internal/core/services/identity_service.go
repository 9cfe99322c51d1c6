package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
	"github.com/nextgen-care/clinic-service/internal/observability"
)

// IdentityService owns patient registration and credential verification for
// both roles. The administrator is a fixed configuration-held credential and
// never a row in the Patients collection.
type IdentityService struct {
	store      ports.RecordStore
	notifier   ports.NotificationSink
	validate   *validator.Validate
	adminEmail string
	adminHash  string
}

var _ ports.IdentityService = (*IdentityService)(nil)

func NewIdentityService(
	store ports.RecordStore,
	notifier ports.NotificationSink,
	validate *validator.Validate,
	adminEmail, adminHash string,
) *IdentityService {
	return &IdentityService{
		store:      store,
		notifier:   notifier,
		validate:   validate,
		adminEmail: NormalizeEmail(adminEmail),
		adminHash:  adminHash,
	}
}

// NormalizeEmail is the canonical form used for the Patients key and all
// credential lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *IdentityService) Register(ctx context.Context, in ports.RegisterInput) (domain.Patient, error) {
	if err := s.validate.Struct(in); err != nil {
		return domain.Patient{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	email := NormalizeEmail(in.Email)
	if email == s.adminEmail {
		// The admin identifier can never double as a patient account.
		return domain.Patient{}, domain.ErrDuplicateEmail
	}

	// Uniqueness check immediately before the insert. Two racing
	// registrations can slip through the window; the store offers no
	// cross-record atomicity, so the race is accepted rather than hidden.
	_, err := s.store.Get(ctx, ports.Patients, email)
	if err == nil {
		return domain.Patient{}, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Patient{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Patient{}, err
	}

	patient := domain.Patient{
		ID:              uuid.NewString(),
		Email:           email,
		PasswordHash:    string(hash),
		Name:            in.Name,
		DateOfBirth:     in.DateOfBirth,
		BloodType:       in.BloodType,
		Allergies:       in.Allergies,
		KnownConditions: in.KnownConditions,
	}

	if err := s.store.Put(ctx, ports.Patients, patient.Item()); err != nil {
		return domain.Patient{}, err
	}

	observability.RegistrationsTotal.Inc()
	notify(ctx, s.notifier, "patient.registered", "patient "+patient.ID+" registered")
	return patient, nil
}

// AuthenticatePatient fails uniformly for an unknown email and a wrong
// password, so callers cannot enumerate registered addresses.
func (s *IdentityService) AuthenticatePatient(ctx context.Context, email, password string) (domain.Patient, error) {
	it, err := s.store.Get(ctx, ports.Patients, NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Patient{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Patient{}, err
	}

	patient := domain.PatientFromItem(it)
	if bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(password)) != nil {
		return domain.Patient{}, domain.ErrInvalidCredentials
	}

	observability.LoginsTotal.WithLabelValues(string(domain.RolePatient)).Inc()
	return patient, nil
}

func (s *IdentityService) AuthenticateAdministrator(ctx context.Context, identifier, password string) error {
	if NormalizeEmail(identifier) != s.adminEmail {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}

	observability.LoginsTotal.WithLabelValues(string(domain.RoleAdmin)).Inc()
	return nil
}

func (s *IdentityService) GetProfile(ctx context.Context, p domain.Principal) (domain.Patient, error) {
	if !p.IsPatient() {
		return domain.Patient{}, domain.ErrUnauthorized
	}

	it, err := s.store.Get(ctx, ports.Patients, p.Email)
	if err != nil {
		return domain.Patient{}, err
	}
	return domain.PatientFromItem(it), nil
}

// UpdateProfile is the only mutation a patient record sees after creation.
// Email and password cannot be changed here.
func (s *IdentityService) UpdateProfile(ctx context.Context, p domain.Principal, in ports.ProfileUpdateInput) (domain.Patient, error) {
	if !p.IsPatient() {
		return domain.Patient{}, domain.ErrUnauthorized
	}
	if err := s.validate.Struct(in); err != nil {
		return domain.Patient{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	it, err := s.store.Get(ctx, ports.Patients, p.Email)
	if err != nil {
		return domain.Patient{}, err
	}

	patient := domain.PatientFromItem(it)
	patient.Name = in.Name
	patient.BloodType = in.BloodType
	patient.Allergies = in.Allergies
	patient.KnownConditions = in.KnownConditions

	if err := s.store.Put(ctx, ports.Patients, patient.Item()); err != nil {
		return domain.Patient{}, err
	}
	return patient, nil
}

func (s *IdentityService) ListPatients(ctx context.Context, p domain.Principal) ([]domain.Patient, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.store.ScanAll(ctx, ports.Patients)
	if err != nil {
		return nil, err
	}

	patients := make([]domain.Patient, len(items))
	for i, it := range items {
		patients[i] = domain.PatientFromItem(it)
	}
	return patients, nil
}

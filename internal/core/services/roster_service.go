package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// RosterService maintains the doctor roster. Mutations are administrator-only
// and the service checks the role itself; the HTTP middleware is a
// convenience, not the authority.
type RosterService struct {
	store    ports.RecordStore
	notifier ports.NotificationSink
	validate *validator.Validate
}

var _ ports.RosterService = (*RosterService)(nil)

func NewRosterService(store ports.RecordStore, notifier ports.NotificationSink, validate *validator.Validate) *RosterService {
	return &RosterService{store: store, notifier: notifier, validate: validate}
}

func (s *RosterService) AddDoctor(ctx context.Context, p domain.Principal, in ports.DoctorInput) (domain.Doctor, error) {
	if !p.IsAdmin() {
		return domain.Doctor{}, domain.ErrUnauthorized
	}

	years, err := s.checkInput(in)
	if err != nil {
		return domain.Doctor{}, err
	}

	// Doctors are not unique-keyed by name; duplicates are allowed.
	doctor := domain.Doctor{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Specialty:       in.Specialty,
		YearsExperience: years,
		ImageRef:        in.ImageRef,
	}

	if err := s.store.Put(ctx, ports.Doctors, doctor.Item()); err != nil {
		return domain.Doctor{}, err
	}

	notify(ctx, s.notifier, "roster.doctor_added", "doctor "+doctor.Name+" joined the roster")
	return doctor, nil
}

// UpdateDoctor replaces every field; partial updates are not supported at
// this layer.
func (s *RosterService) UpdateDoctor(ctx context.Context, p domain.Principal, id string, in ports.DoctorInput) (domain.Doctor, error) {
	if !p.IsAdmin() {
		return domain.Doctor{}, domain.ErrUnauthorized
	}

	years, err := s.checkInput(in)
	if err != nil {
		return domain.Doctor{}, err
	}

	if _, err := s.store.Get(ctx, ports.Doctors, id); err != nil {
		return domain.Doctor{}, err
	}

	doctor := domain.Doctor{
		ID:              id,
		Name:            in.Name,
		Specialty:       in.Specialty,
		YearsExperience: years,
		ImageRef:        in.ImageRef,
	}

	if err := s.store.Put(ctx, ports.Doctors, doctor.Item()); err != nil {
		return domain.Doctor{}, err
	}
	return doctor, nil
}

// RemoveDoctor reports success even when the store never had the id: a doctor
// already absent satisfies "doctor removed".
func (s *RosterService) RemoveDoctor(ctx context.Context, p domain.Principal, id string) error {
	if !p.IsAdmin() {
		return domain.ErrUnauthorized
	}

	if err := s.store.Delete(ctx, ports.Doctors, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *RosterService) GetDoctor(ctx context.Context, id string) (domain.Doctor, error) {
	it, err := s.store.Get(ctx, ports.Doctors, id)
	if err != nil {
		return domain.Doctor{}, err
	}
	return domain.DoctorFromItem(it), nil
}

func (s *RosterService) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	items, err := s.store.ScanAll(ctx, ports.Doctors)
	if err != nil {
		return nil, err
	}

	doctors := make([]domain.Doctor, len(items))
	for i, it := range items {
		doctors[i] = domain.DoctorFromItem(it)
	}
	return doctors, nil
}

func (s *RosterService) checkInput(in ports.DoctorInput) (int, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	years, err := strconv.Atoi(strings.TrimSpace(in.YearsExperience))
	if err != nil || years < 0 {
		return 0, fmt.Errorf("%w: years_experience must be a non-negative integer", domain.ErrValidation)
	}
	return years, nil
}

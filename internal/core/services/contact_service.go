package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// ContactService stores messages from the public contact form. Submission is
// open to anyone; the listing is administrator-only.
type ContactService struct {
	store    ports.RecordStore
	validate *validator.Validate
}

var _ ports.ContactService = (*ContactService)(nil)

func NewContactService(store ports.RecordStore, validate *validator.Validate) *ContactService {
	return &ContactService{store: store, validate: validate}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) (domain.ContactMessage, error) {
	if err := s.validate.Struct(in); err != nil {
		return domain.ContactMessage{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msg := domain.ContactMessage{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Message:     in.Message,
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.store.Put(ctx, ports.Contacts, msg.Item()); err != nil {
		return domain.ContactMessage{}, err
	}
	return msg, nil
}

func (s *ContactService) ListAll(ctx context.Context, p domain.Principal) ([]domain.ContactMessage, error) {
	if !p.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.store.ScanAll(ctx, ports.Contacts)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.ContactMessage, len(items))
	for i, it := range items {
		messages[i] = domain.ContactFromItem(it)
	}
	return messages, nil
}

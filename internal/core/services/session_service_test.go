package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nextgen-care/clinic-service/internal/adapters/session"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/services"
)

var testSecret = []byte("test-session-secret")

func TestSession_IssueAndResolve(t *testing.T) {
	svc := services.NewSessionService(session.NewMemoryStore(), testSecret)
	ctx := context.Background()

	principal := domain.Principal{Role: domain.RolePatient, PatientID: "p-1", Email: "alice@example.com"}
	token, err := svc.Issue(ctx, principal)
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	got, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("unexpected resolve error: %v", err)
	}
	if got != principal {
		t.Errorf("resolved %+v, want %+v", got, principal)
	}
}

func TestSession_RevokeKillsToken(t *testing.T) {
	svc := services.NewSessionService(session.NewMemoryStore(), testSecret)
	ctx := context.Background()

	token, err := svc.Issue(ctx, domain.Principal{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("unexpected revoke error: %v", err)
	}

	// The envelope is still a valid JWT; the session behind it is gone.
	if _, err := svc.Resolve(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized after revoke, got %v", err)
	}

	// Revoking again is a no-op.
	if err := svc.Revoke(ctx, token); err != nil {
		t.Errorf("second revoke should succeed, got %v", err)
	}
}

func TestSession_ResolveRejectsGarbage(t *testing.T) {
	svc := services.NewSessionService(session.NewMemoryStore(), testSecret)
	ctx := context.Background()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Resolve(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestSession_ResolveRejectsForeignSignature(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	other := services.NewSessionService(store, []byte("some-other-secret"))
	token, err := other.Issue(ctx, domain.Principal{Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected issue error: %v", err)
	}

	// Same backing store, different signing key: the envelope fails.
	svc := services.NewSessionService(store, testSecret)
	if _, err := svc.Resolve(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for a foreign signature, got %v", err)
	}
}

func TestSession_RevokeIgnoresGarbage(t *testing.T) {
	svc := services.NewSessionService(session.NewMemoryStore(), testSecret)

	if err := svc.Revoke(context.Background(), "not-a-token"); err != nil {
		t.Errorf("revoking garbage should be a no-op, got %v", err)
	}
}

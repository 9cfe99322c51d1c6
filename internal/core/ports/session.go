package ports

import (
	"context"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
)

// SessionStore holds server-correlated session state keyed by token id.
// A session that is not in the store is dead regardless of what the token
// envelope still claims.
type SessionStore interface {
	Save(ctx context.Context, id string, p domain.Principal) error
	Find(ctx context.Context, id string) (domain.Principal, error)
	Delete(ctx context.Context, id string) error
}

type SessionService interface {
	Issue(ctx context.Context, p domain.Principal) (string, error)
	Resolve(ctx context.Context, token string) (domain.Principal, error)
	Revoke(ctx context.Context, token string) error
}

package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type contextKey string

const principalKey contextKey = "principal"

// SessionMiddleware resolves the bearer token into a Principal and gates
// handlers by role. Every capability check fails closed: no token, a revoked
// session, or a role mismatch all deny.
type SessionMiddleware struct {
	sessions ports.SessionService
}

func NewSessionMiddleware(sessions ports.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) RequireRole(roles []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		p, err := m.sessions.Resolve(r.Context(), token)
		if err != nil {
			log.Printf("session resolve failed: %v", err)
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range roles {
			if p.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, p)
		next(w, r.WithContext(ctx))
	}
}

// BearerToken extracts the token from the Authorization header, or returns
// the empty string when none is presented.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// PrincipalFrom returns the principal injected by RequireRole. Outside a
// gated handler it returns the anonymous principal.
func PrincipalFrom(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalKey).(domain.Principal)
	return p
}

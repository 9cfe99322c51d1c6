package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

const sessionTokenTTL = 24 * time.Hour

// SessionService issues and resolves session tokens. The token is an HS256
// JWT, but validity is decided server-side: the jti must still exist in the
// session store, so logout and role switches revoke immediately regardless of
// what the envelope claims.
type SessionService struct {
	sessions ports.SessionStore
	secret   []byte
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(sessions ports.SessionStore, secret []byte) *SessionService {
	return &SessionService{sessions: sessions, secret: secret}
}

func (s *SessionService) Issue(ctx context.Context, p domain.Principal) (string, error) {
	id := uuid.NewString()
	if err := s.sessions.Save(ctx, id, p); err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"jti":  id,
		"sub":  p.PatientID,
		"role": string(p.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(sessionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		// Roll back the half-issued session; nothing can present it.
		_ = s.sessions.Delete(ctx, id)
		return "", err
	}
	return signed, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	id, err := s.sessionID(token)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	p, err := s.sessions.Find(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.Principal{}, err
	}
	return p, nil
}

// Revoke clears the server-side session. An unparseable or already-revoked
// token is a no-op: the caller holds no role either way.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	id, err := s.sessionID(token)
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *SessionService) sessionID(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	id, ok := claims["jti"].(string)
	if !ok || id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

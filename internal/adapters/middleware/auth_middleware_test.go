package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/adapters/session"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/services"
)

func newGate(t *testing.T) (*middleware.SessionMiddleware, *services.SessionService) {
	t.Helper()
	sessions := services.NewSessionService(session.NewMemoryStore(), []byte("middleware-test-secret"))
	return middleware.NewSessionMiddleware(sessions), sessions
}

func issueToken(t *testing.T, sessions *services.SessionService, p domain.Principal) string {
	t.Helper()
	token, err := sessions.Issue(context.Background(), p)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestRequireRole(t *testing.T) {
	gate, sessions := newGate(t)

	patient := domain.Principal{Role: domain.RolePatient, PatientID: "p-1", Email: "alice@example.com"}
	patientToken := issueToken(t, sessions, patient)
	adminToken := issueToken(t, sessions, domain.Principal{Role: domain.RoleAdmin})

	revokedToken := issueToken(t, sessions, patient)
	if err := sessions.Revoke(context.Background(), revokedToken); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		roles      []domain.Role
		wantStatus int
	}{
		{"no header", "", []domain.Role{domain.RolePatient}, http.StatusUnauthorized},
		{"malformed header", "Basic abc", []domain.Role{domain.RolePatient}, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", []domain.Role{domain.RolePatient}, http.StatusUnauthorized},
		{"revoked session", "Bearer " + revokedToken, []domain.Role{domain.RolePatient}, http.StatusUnauthorized},
		{"wrong role", "Bearer " + patientToken, []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
		{"matching role", "Bearer " + patientToken, []domain.Role{domain.RolePatient}, http.StatusOK},
		{"either role", "Bearer " + adminToken, []domain.Role{domain.RolePatient, domain.RoleAdmin}, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := gate.RequireRole(tc.roles, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireRole_InjectsPrincipal(t *testing.T) {
	gate, sessions := newGate(t)

	patient := domain.Principal{Role: domain.RolePatient, PatientID: "p-1", Email: "alice@example.com"}
	token := issueToken(t, sessions, patient)

	var got domain.Principal
	handler := gate.RequireRole([]domain.Role{domain.RolePatient}, func(w http.ResponseWriter, r *http.Request) {
		got = middleware.PrincipalFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(httptest.NewRecorder(), req)

	if got != patient {
		t.Errorf("handler saw principal %+v, want %+v", got, patient)
	}
}

func TestPrincipalFrom_Anonymous(t *testing.T) {
	p := middleware.PrincipalFrom(context.Background())
	if !p.IsAnonymous() {
		t.Errorf("expected anonymous principal outside a gated handler, got %+v", p)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"absent", "", ""},
		{"bearer", "Bearer abc.def", "abc.def"},
		{"wrong scheme", "Basic abc", ""},
		{"scheme only", "Bearer", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := middleware.BearerToken(req); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

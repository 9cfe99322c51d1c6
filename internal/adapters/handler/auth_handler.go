package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type AuthHandler struct {
	identity ports.IdentityService
	sessions ports.SessionService
}

func NewAuthHandler(identity ports.IdentityService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{identity: identity, sessions: sessions}
}

type RegisterResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req ports.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.identity.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "Registration successful",
		ID:      patient.ID,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

// Login serves both roles from one endpoint: the fixed administrator
// credential is checked first, then the patient lookup. All failures collapse
// into the same invalid-credentials answer.
//
// Session exclusivity is enforced against the token the client presents: a
// login carrying a bearer token revokes that session first. A client that
// discards its old token instead leaves the orphaned session live until its
// JWT envelope expires; the server keeps no per-account session index to
// hunt it down.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var principal domain.Principal
	if err := h.identity.AuthenticateAdministrator(r.Context(), req.Email, req.Password); err == nil {
		principal = domain.Principal{Role: domain.RoleAdmin}
	} else if !errors.Is(err, domain.ErrInvalidCredentials) {
		writeError(w, err)
		return
	} else {
		patient, err := h.identity.AuthenticatePatient(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		principal = domain.Principal{
			Role:      domain.RolePatient,
			PatientID: patient.ID,
			Email:     patient.Email,
		}
	}

	// Sessions are mutually exclusive, never additive: a login presented
	// with an existing token revokes that session before issuing the new
	// role.
	if prior := middleware.BearerToken(r); prior != "" {
		_ = h.sessions.Revoke(r.Context(), prior)
	}

	token, err := h.sessions.Issue(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		Role:    string(principal.Role),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(r.Context(), middleware.BearerToken(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

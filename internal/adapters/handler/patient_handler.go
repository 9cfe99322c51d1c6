package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// PatientHandler serves the authenticated patient's own profile.
type PatientHandler struct {
	identity ports.IdentityService
}

func NewPatientHandler(identity ports.IdentityService) *PatientHandler {
	return &PatientHandler{identity: identity}
}

func (h *PatientHandler) Me(w http.ResponseWriter, r *http.Request) {
	patient, err := h.identity.GetProfile(r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *PatientHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req ports.ProfileUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.identity.UpdateProfile(r.Context(), middleware.PrincipalFrom(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

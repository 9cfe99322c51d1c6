package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// RosterHandler serves the public doctor listing and the admin-only roster
// mutations.
type RosterHandler struct {
	roster ports.RosterService
}

func NewRosterHandler(roster ports.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.roster.ListDoctors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.roster.GetDoctor(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

func (h *RosterHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req ports.DoctorInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	doctor, err := h.roster.AddDoctor(r.Context(), middleware.PrincipalFrom(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doctor)
}

func (h *RosterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ports.DoctorInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	doctor, err := h.roster.UpdateDoctor(r.Context(), middleware.PrincipalFrom(r.Context()), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

func (h *RosterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.RemoveDoctor(r.Context(), middleware.PrincipalFrom(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Doctor removed"})
}

package handler

import (
	"net/http"

	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// AdminHandler serves the dashboard listings: every patient, appointment and
// contact message in the store.
type AdminHandler struct {
	identity     ports.IdentityService
	appointments ports.AppointmentService
	contacts     ports.ContactService
}

func NewAdminHandler(identity ports.IdentityService, appointments ports.AppointmentService, contacts ports.ContactService) *AdminHandler {
	return &AdminHandler{identity: identity, appointments: appointments, contacts: contacts}
}

func (h *AdminHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.identity.ListPatients(r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.appointments.ListAll(r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contacts.ListAll(r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

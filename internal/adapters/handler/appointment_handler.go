package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type AppointmentHandler struct {
	appointments ports.AppointmentService
}

func NewAppointmentHandler(appointments ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	appts, err := h.appointments.ListForPatient(r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req ports.BookingInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.appointments.Book(r.Context(), middleware.PrincipalFrom(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	err := h.appointments.Cancel(r.Context(), middleware.PrincipalFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Appointment cancelled"})
}

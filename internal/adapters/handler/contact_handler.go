package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ports.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.contacts.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Message sent successfully",
		"id":      msg.ID,
	})
}

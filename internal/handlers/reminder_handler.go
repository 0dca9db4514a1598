// File: internal/handlers/reminder_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/careloop/go-companion/internal/dtos"
	"github.com/careloop/go-companion/internal/services"
)

type ReminderHandler struct {
	ReminderService *services.ReminderService
}

func NewReminderHandler(rs *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{ReminderService: rs}
}

// ListReminders handles GET /api/reminders.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dtos.FromReminders(h.ReminderService.List()))
}

// CreateReminder handles POST /api/reminders.
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req dtos.ReminderCreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	reminder, err := h.ReminderService.Add(r.Context(), req.Label, req.Schedule)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.FromReminder(reminder))
}

// DeleteReminder handles DELETE /api/reminders/{id}.
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.ReminderService.Remove(r.Context(), id); err != nil {
		writeError(w, "Reminder not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

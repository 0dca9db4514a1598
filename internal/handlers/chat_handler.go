// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/careloop/go-companion/internal/dtos"
	"github.com/careloop/go-companion/internal/services"
)

type ChatHandler struct {
	ConversationService *services.ConversationService
}

func NewChatHandler(cs *services.ConversationService) *ChatHandler {
	return &ChatHandler{ConversationService: cs}
}

// GetConversation handles GET /api/conversation.
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	messages, err := h.ConversationService.Messages()
	if err != nil {
		writeError(w, "Conversation is not ready", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, dtos.FromMessages(messages))
}

// SendMessage handles POST /api/conversation/messages.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := h.ConversationService.SendMessage(r.Context(), req.Message)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, dtos.TurnResponseDTO{
		UserMessage: dtos.FromMessage(result.UserMessage),
		Reply:       dtos.FromMessage(result.Reply),
		Failed:      result.Failed,
	})
}

// ResetConversation handles DELETE /api/conversation.
func (h *ChatHandler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.ConversationService.Reset(r.Context()); err != nil {
		writeError(w, "Could not reset conversation", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

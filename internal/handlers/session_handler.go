// File: internal/handlers/session_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careloop/go-companion/internal/auth"
)

// SessionHandler unlocks the companion with the caregiver-set access PIN
// and mints a session token.
type SessionHandler struct {
	pinHash   []byte
	secretKey []byte
}

func NewSessionHandler(pinHash, secretKey []byte) *SessionHandler {
	return &SessionHandler{pinHash: pinHash, secretKey: secretKey}
}

// CreateSession handles POST /api/session.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.PIN) == "" {
		writeError(w, "PIN is required", http.StatusBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.pinHash, []byte(req.PIN)); err != nil {
		log.Printf("[SessionHandler] PIN check failed from %s", r.RemoteAddr)
		writeError(w, "Incorrect PIN", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateSessionToken(uuid.NewString(), h.secretKey)
	if err != nil {
		log.Printf("[SessionHandler] Token generation failed: %v", err)
		writeError(w, "Could not create session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

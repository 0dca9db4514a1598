package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/careloop/go-companion/internal/auth"
)

func newTestSessionHandler(t *testing.T) *SessionHandler {
	t.Helper()
	pinHash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return NewSessionHandler(pinHash, []byte("test-secret"))
}

func TestCreateSessionWithCorrectPIN(t *testing.T) {
	h := newTestSessionHandler(t)

	r := httptest.NewRequest("POST", "/api/session", strings.NewReader(`{"pin":"4321"}`))
	w := httptest.NewRecorder()
	h.CreateSession(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "token") {
		t.Errorf("expected token in response, got %s", w.Body.String())
	}
}

func TestCreateSessionWithWrongPIN(t *testing.T) {
	h := newTestSessionHandler(t)

	r := httptest.NewRequest("POST", "/api/session", strings.NewReader(`{"pin":"0000"}`))
	w := httptest.NewRecorder()
	h.CreateSession(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateSessionRequiresPIN(t *testing.T) {
	h := newTestSessionHandler(t)

	r := httptest.NewRequest("POST", "/api/session", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.CreateSession(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMintedTokenPassesSessionValidation(t *testing.T) {
	h := newTestSessionHandler(t)

	r := httptest.NewRequest("POST", "/api/session", strings.NewReader(`{"pin":"4321"}`))
	w := httptest.NewRecorder()
	h.CreateSession(w, r)

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if _, err := auth.ValidateSessionToken(resp.Token, []byte("test-secret")); err != nil {
		t.Errorf("minted token failed validation: %v", err)
	}
}

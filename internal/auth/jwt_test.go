package auth

import "testing"

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateSessionToken("session-123", secret)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	sessionID, err := ValidateSessionToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateSessionToken failed: %v", err)
	}
	if sessionID != "session-123" {
		t.Errorf("expected session-123, got %q", sessionID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("session-123", []byte("secret-a"))
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if _, err := ValidateSessionToken(token, []byte("secret-b")); err == nil {
		t.Errorf("expected validation to fail with wrong secret")
	}
}

func TestGenerateRejectsEmptySessionID(t *testing.T) {
	if _, err := GenerateSessionToken("", []byte("secret")); err == nil {
		t.Errorf("expected error for empty session ID")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateSessionToken("not.a.token", []byte("secret")); err == nil {
		t.Errorf("expected error for malformed token")
	}
}

package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter() *AttemptLimiter {
	return NewAttemptLimiter(&Config{
		WindowSize:    time.Minute,
		MaxAttempts:   3,
		LockDuration:  time.Minute,
		CleanupPeriod: time.Hour,
	})
}

func TestAllowWithinLimit(t *testing.T) {
	limiter := newTestLimiter()
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		status := limiter.Allow("1.2.3.4")
		if !status.Allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		if status.Remaining != 3-(i+1) {
			t.Errorf("attempt %d: expected %d remaining, got %d", i+1, 3-(i+1), status.Remaining)
		}
	}
}

func TestLockAfterLimitExceeded(t *testing.T) {
	limiter := newTestLimiter()
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		limiter.Allow("1.2.3.4")
	}
	status := limiter.Allow("1.2.3.4")
	if status.Allowed || !status.Locked {
		t.Fatalf("expected lock after exceeding limit, got %+v", status)
	}
	if status.RetryAfter <= 0 {
		t.Errorf("expected positive RetryAfter during lock")
	}

	// Other identifiers are unaffected.
	if !limiter.Allow("5.6.7.8").Allowed {
		t.Errorf("unrelated identifier should not be locked")
	}
}

func TestResetClearsAttempts(t *testing.T) {
	limiter := newTestLimiter()
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		limiter.Allow("1.2.3.4")
	}
	limiter.Reset("1.2.3.4")

	status := limiter.Allow("1.2.3.4")
	if !status.Allowed || status.Remaining != 2 {
		t.Errorf("expected fresh window after reset, got %+v", status)
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/session", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if ip := ClientIP(r); ip != "203.0.113.7" {
		t.Errorf("expected forwarded IP, got %q", ip)
	}

	r.Header.Del("X-Forwarded-For")
	if ip := ClientIP(r); ip != "10.0.0.1" {
		t.Errorf("expected remote host, got %q", ip)
	}
}

// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config controls PIN attempt limiting.
type Config struct {
	WindowSize    time.Duration
	MaxAttempts   int
	LockDuration  time.Duration
	CleanupPeriod time.Duration
}

// DefaultPINConfig returns the limits applied to the PIN unlock endpoint.
// Generous window, small attempt count: a four-digit PIN survives very few
// guesses.
func DefaultPINConfig() *Config {
	return &Config{
		WindowSize:    15 * time.Minute,
		MaxAttempts:   5,
		LockDuration:  30 * time.Minute,
		CleanupPeriod: 30 * time.Minute,
	}
}

// Status describes the limiter's decision for one request.
type Status struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Locked     bool
}

type attemptRecord struct {
	count     int
	firstSeen time.Time
	lockedAt  *time.Time
}

// AttemptLimiter is an in-memory fixed-window limiter with a lockout once
// the window is exhausted.
type AttemptLimiter struct {
	config   *Config
	mu       sync.Mutex
	attempts map[string]*attemptRecord
	stopCh   chan struct{}
}

func NewAttemptLimiter(config *Config) *AttemptLimiter {
	limiter := &AttemptLimiter{
		config:   config,
		attempts: make(map[string]*attemptRecord),
		stopCh:   make(chan struct{}),
	}
	go limiter.cleanupLoop()
	return limiter
}

// Allow records an attempt for the identifier and reports whether it may
// proceed.
func (l *AttemptLimiter) Allow(identifier string) *Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	record, exists := l.attempts[identifier]

	if !exists || now.Sub(record.firstSeen) > l.config.WindowSize && record.lockedAt == nil {
		l.attempts[identifier] = &attemptRecord{count: 1, firstSeen: now}
		return &Status{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetTime: now.Add(l.config.WindowSize),
		}
	}

	if record.lockedAt != nil {
		elapsed := now.Sub(*record.lockedAt)
		if elapsed < l.config.LockDuration {
			return &Status{
				ResetTime:  record.lockedAt.Add(l.config.LockDuration),
				RetryAfter: l.config.LockDuration - elapsed,
				Locked:     true,
			}
		}
		// Lock expired, start a fresh window.
		l.attempts[identifier] = &attemptRecord{count: 1, firstSeen: now}
		return &Status{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetTime: now.Add(l.config.WindowSize),
		}
	}

	record.count++
	if record.count > l.config.MaxAttempts {
		lockTime := now
		record.lockedAt = &lockTime
		return &Status{
			ResetTime:  now.Add(l.config.LockDuration),
			RetryAfter: l.config.LockDuration,
			Locked:     true,
		}
	}

	return &Status{
		Allowed:   true,
		Remaining: l.config.MaxAttempts - record.count,
		ResetTime: record.firstSeen.Add(l.config.WindowSize),
	}
}

// Reset clears the attempt record, e.g. after a correct PIN.
func (l *AttemptLimiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, identifier)
}

func (l *AttemptLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *AttemptLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for identifier, record := range l.attempts {
		windowExpired := record.lockedAt == nil && now.Sub(record.firstSeen) > l.config.WindowSize
		lockExpired := record.lockedAt != nil && now.Sub(*record.lockedAt) > l.config.LockDuration
		if windowExpired || lockExpired {
			delete(l.attempts, identifier)
		}
	}
}

// Close stops the cleanup goroutine.
func (l *AttemptLimiter) Close() {
	close(l.stopCh)
}

// ClientIP extracts the client address, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

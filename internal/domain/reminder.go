// File: internal/domain/reminder.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a recurring care reminder, e.g. "Take your blood pressure
// medication". Schedule is a cron expression.
type Reminder struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Schedule  string    `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReminder builds a reminder with a fresh ID.
func NewReminder(label, schedule string, now time.Time) Reminder {
	return Reminder{
		ID:        uuid.NewString(),
		Label:     label,
		Schedule:  schedule,
		CreatedAt: now,
	}
}

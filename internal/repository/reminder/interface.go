// File: internal/repository/reminder/interface.go
package reminder

import (
	"context"

	"github.com/careloop/go-companion/internal/domain"
)

// ReminderRepository persists the resident's care reminders as a single
// snapshot in the key-value store.
type ReminderRepository interface {
	Load(ctx context.Context) ([]domain.Reminder, error)
	Save(ctx context.Context, reminders []domain.Reminder) error
}

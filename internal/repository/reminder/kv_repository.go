// File: internal/repository/reminder/kv_repository.go
package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/careloop/go-companion/internal/domain"
	"github.com/careloop/go-companion/internal/storage"
)

// StorageKey is the fixed key the reminder list is persisted under.
const StorageKey = "care_reminders"

type kvReminderRepository struct {
	store storage.KVStore
}

func NewReminderRepository(store storage.KVStore) ReminderRepository {
	return &kvReminderRepository{store: store}
}

// Load returns the stored reminders. Missing or unparsable data recovers to
// an empty list, mirroring the conversation store's recovery path.
func (r *kvReminderRepository) Load(ctx context.Context) ([]domain.Reminder, error) {
	payload, found, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("[ReminderRepository] Storage read failed, starting with no reminders: %v", err)
		return nil, nil
	}
	if !found {
		return nil, nil
	}

	var reminders []domain.Reminder
	if err := json.Unmarshal([]byte(payload), &reminders); err != nil {
		log.Printf("[ReminderRepository] Stored reminders unparsable, starting with no reminders: %v", err)
		return nil, nil
	}
	return reminders, nil
}

// Save overwrites the stored reminder list.
func (r *kvReminderRepository) Save(ctx context.Context, reminders []domain.Reminder) error {
	if reminders == nil {
		reminders = []domain.Reminder{}
	}

	payload, err := json.Marshal(reminders)
	if err != nil {
		log.Printf("[ReminderRepository] Failed to encode reminders: %v", err)
		return errors.New("storage error encoding reminders")
	}
	if err := r.store.Set(ctx, StorageKey, string(payload)); err != nil {
		log.Printf("[ReminderRepository] Storage write failed for %d reminders: %v", len(reminders), err)
		return errors.New("storage error writing reminders")
	}
	return nil
}

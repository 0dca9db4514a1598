// File: internal/repository/conversation/kv_repository.go
package conversation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/careloop/go-companion/internal/domain"
	"github.com/careloop/go-companion/internal/storage"
)

// StorageKey is the fixed key the conversation is persisted under.
const StorageKey = "ai_chat_history"

var ErrNilConversation = errors.New("conversation cannot be nil")

type kvConversationRepository struct {
	store storage.KVStore
	now   func() time.Time
}

func NewConversationRepository(store storage.KVStore) ConversationRepository {
	return &kvConversationRepository{store: store, now: time.Now}
}

// Load reads the conversation from the fixed storage key. Every failure on
// this path is a recovery case, not an error: the resident always gets a
// usable conversation, seeded with the welcome message if need be.
func (r *kvConversationRepository) Load(ctx context.Context) (domain.Conversation, error) {
	payload, found, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("[ConversationRepository] Storage read failed, seeding welcome conversation: %v", err)
		return domain.NewWelcomeConversation(r.now()), nil
	}
	if !found {
		return domain.NewWelcomeConversation(r.now()), nil
	}

	conv, err := decodeMessages(payload)
	if err != nil {
		log.Printf("[ConversationRepository] Stored history unparsable, seeding welcome conversation: %v", err)
		return domain.NewWelcomeConversation(r.now()), nil
	}
	return conv, nil
}

// Save serializes the full sequence and overwrites the stored value.
// Persistence is best-effort: the caller logs failures and keeps the
// in-memory conversation as-is.
func (r *kvConversationRepository) Save(ctx context.Context, conv domain.Conversation) error {
	if conv == nil {
		return ErrNilConversation
	}

	payload, err := encodeMessages(conv)
	if err != nil {
		log.Printf("[ConversationRepository] Failed to encode conversation: %v", err)
		return errors.New("storage error encoding conversation")
	}
	if err := r.store.Set(ctx, StorageKey, payload); err != nil {
		log.Printf("[ConversationRepository] Storage write failed for %d messages: %v", len(conv), err)
		return errors.New("storage error writing conversation")
	}
	return nil
}

// File: internal/repository/conversation/interface.go
package conversation

import (
	"context"

	"github.com/careloop/go-companion/internal/domain"
)

// ConversationRepository keeps the durable copy of the resident's chat
// history synchronized with the key-value store.
type ConversationRepository interface {
	// Load returns the persisted conversation. A missing key, a read
	// failure, or an unparsable payload all recover to a freshly seeded
	// welcome conversation; that path never returns an error.
	Load(ctx context.Context) (domain.Conversation, error)

	// Save overwrites the stored conversation with the full sequence.
	Save(ctx context.Context, conv domain.Conversation) error
}

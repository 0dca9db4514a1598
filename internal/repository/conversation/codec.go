// File: internal/repository/conversation/codec.go
//
// The persisted shape is isolated here so a schema version field can be
// added without touching the repository.
package conversation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/careloop/go-companion/internal/domain"
)

// persistedMessage is the storage form of a message. The store accepts only
// text, so timestamps are serialized as RFC 3339 strings with nanosecond
// precision (lossless well past the required millisecond).
type persistedMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
}

func encodeMessages(conv domain.Conversation) (string, error) {
	records := make([]persistedMessage, len(conv))
	for i, msg := range conv {
		records[i] = persistedMessage{
			ID:        msg.ID,
			Text:      msg.Text,
			Author:    string(msg.Author),
			Timestamp: msg.CreatedAt.Format(time.RFC3339Nano),
		}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding conversation: %w", err)
	}
	return string(raw), nil
}

func decodeMessages(payload string) (domain.Conversation, error) {
	var records []persistedMessage
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decoding conversation: %w", err)
	}

	conv := make(domain.Conversation, 0, len(records))
	for i, rec := range records {
		ts, err := time.Parse(time.RFC3339Nano, rec.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decoding timestamp of message %d: %w", i, err)
		}
		author := domain.Author(rec.Author)
		if author != domain.AuthorUser && author != domain.AuthorAssistant {
			return nil, fmt.Errorf("unknown author %q in message %d", rec.Author, i)
		}
		conv = append(conv, domain.Message{
			ID:        rec.ID,
			Text:      rec.Text,
			Author:    author,
			CreatedAt: ts,
		})
	}
	return conv, nil
}

// File: internal/domain/message.go
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Author identifies who wrote a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// WelcomeMessageID is the reserved sentinel ID of the synthesized welcome
// message. Outbound AI context filtering matches on this ID only.
const WelcomeMessageID = "welcome"

// WelcomeText is shown when no prior history exists for the resident.
const WelcomeText = "Hello! I'm your care companion. You can ask me about " +
	"your health, your medications, or just have a chat. How are you feeling today?"

// MaxUserMessageLen bounds user input, in runes.
const MaxUserMessageLen = 500

// Message is one turn of the conversation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is the ordered, append-only message sequence for one session.
type Conversation []Message

// NewUserMessage builds a user turn with a fresh ID. Input is trimmed and
// truncated to MaxUserMessageLen runes.
func NewUserMessage(text string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      TruncateText(strings.TrimSpace(text), MaxUserMessageLen),
		Author:    AuthorUser,
		CreatedAt: now,
	}
}

// NewAssistantMessage builds an assistant turn with a fresh ID.
func NewAssistantMessage(text string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    AuthorAssistant,
		CreatedAt: now,
	}
}

// NewWelcomeConversation seeds the conversation shown on first start, and
// the recovery state when persisted history cannot be read.
func NewWelcomeConversation(now time.Time) Conversation {
	return Conversation{{
		ID:        WelcomeMessageID,
		Text:      WelcomeText,
		Author:    AuthorAssistant,
		CreatedAt: now,
	}}
}

// Append returns a new Conversation with msg added at the end. The input is
// never mutated: the result has its own backing array, so prior entries held
// by the caller stay unchanged.
func Append(c Conversation, msg Message) Conversation {
	out := make(Conversation, len(c), len(c)+1)
	copy(out, c)
	return append(out, msg)
}

// IsWelcome reports whether m is the seeded welcome message.
func (m Message) IsWelcome() bool {
	return m.ID == WelcomeMessageID
}

// TruncateText safely truncates a UTF-8 string to maxLen runes, preserving
// character integrity.
func TruncateText(input string, maxLen int) string {
	if input == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}

	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

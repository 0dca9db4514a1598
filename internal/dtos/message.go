// File: internal/dtos/message.go
package dtos

import (
	"bytes"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/careloop/go-companion/internal/domain"
)

// markdown renders assistant replies to HTML. The completion service
// answers in markdown; the companion UI displays HTML.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// MessageResponseDTO is the API shape of one conversation message.
// Assistant messages carry an HTML rendering alongside the raw text.
type MessageResponseDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	HTML      string `json:"html,omitempty"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// TurnResponseDTO is returned from the send-message endpoint.
type TurnResponseDTO struct {
	UserMessage MessageResponseDTO `json:"user_message"`
	Reply       MessageResponseDTO `json:"reply"`
	Failed      bool               `json:"failed"`
}

// ReminderDTO is the API shape of one care reminder.
type ReminderDTO struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Schedule  string `json:"schedule"`
	CreatedAt string `json:"created_at"`
}

// ReminderCreateRequestDTO is the payload to add a reminder.
type ReminderCreateRequestDTO struct {
	Label    string `json:"label"`
	Schedule string `json:"schedule"`
}

// SessionRequestDTO is the payload to unlock a session with the access PIN.
type SessionRequestDTO struct {
	PIN string `json:"pin"`
}

// SessionResponseDTO carries the minted session token.
type SessionResponseDTO struct {
	Token string `json:"token"`
}

// FromMessage maps a domain.Message to its API shape.
func FromMessage(msg domain.Message) MessageResponseDTO {
	dto := MessageResponseDTO{
		ID:        msg.ID,
		Text:      msg.Text,
		Author:    string(msg.Author),
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	}
	if msg.Author == domain.AuthorAssistant {
		dto.HTML = renderHTML(msg.Text)
	}
	return dto
}

// FromMessages maps a conversation to its API shape.
func FromMessages(conv domain.Conversation) []MessageResponseDTO {
	out := make([]MessageResponseDTO, len(conv))
	for i, msg := range conv {
		out[i] = FromMessage(msg)
	}
	return out
}

// FromReminder maps a domain.Reminder to its API shape.
func FromReminder(r domain.Reminder) ReminderDTO {
	return ReminderDTO{
		ID:        r.ID,
		Label:     r.Label,
		Schedule:  r.Schedule,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

// FromReminders maps a reminder slice to its API shape.
func FromReminders(reminders []domain.Reminder) []ReminderDTO {
	out := make([]ReminderDTO, len(reminders))
	for i, r := range reminders {
		out[i] = FromReminder(r)
	}
	return out
}

// renderHTML converts markdown to HTML, falling back to the raw text when
// rendering fails.
func renderHTML(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return text
	}
	return buf.String()
}

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// File: internal/services/ai/interface.go
package ai

import "context"

// Role vocabulary of the external completion service.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PromptMessage is one prior turn in the external service's role vocabulary.
// Callers map domain authors to roles and filter the welcome message before
// handing history to the provider; the provider never mutates or reorders it.
type PromptMessage struct {
	Role    string
	Content string
}

// CompletionProvider turns a prompt plus bounded prior context into one
// assistant reply. Stateless: no retries, no persistence, one network call.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string, history []PromptMessage) (string, error)
}

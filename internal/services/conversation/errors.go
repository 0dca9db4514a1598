// File: internal/services/conversation/errors.go
package conversation

import "fmt"

type ErrorType string

const (
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeState      ErrorType = "STATE"
	ErrTypeStorage    ErrorType = "STORAGE"
)

type ConversationError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *ConversationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Conversation %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Conversation %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ConversationError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ConversationError {
	return &ConversationError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewStateError(operation string, state SessionState) *ConversationError {
	return &ConversationError{
		Type:      ErrTypeState,
		Operation: operation,
		Message:   fmt.Sprintf("conversation is not ready (state: %s)", state),
	}
}

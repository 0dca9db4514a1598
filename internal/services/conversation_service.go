// File: internal/services/conversation_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/careloop/go-companion/internal/domain"
	convrepo "github.com/careloop/go-companion/internal/repository/conversation"
	"github.com/careloop/go-companion/internal/services/ai"
	convservice "github.com/careloop/go-companion/internal/services/conversation"
)

// TurnResult is the outcome of one user turn. Failed turns still produce a
// Reply: the error text is appended as a normal assistant message so the
// conversation stays usable.
type TurnResult struct {
	UserMessage domain.Message
	Reply       domain.Message
	Failed      bool
}

// ConversationService owns the in-memory conversation for the active
// session and orchestrates user turns against the completion provider.
// A single mutex guards the load/append/save sequence; the network call
// itself happens outside the lock so reminder notices are never blocked
// behind a slow completion.
type ConversationService struct {
	config   *convservice.Config
	repo     convrepo.ConversationRepository
	provider ai.CompletionProvider
	logger   Logger
	now      func() time.Time

	mu       sync.Mutex
	state    convservice.SessionState
	messages domain.Conversation
}

func NewConversationService(
	repo convrepo.ConversationRepository,
	provider ai.CompletionProvider,
	historyWindow int,
) (*ConversationService, error) {
	if repo == nil {
		return nil, convservice.NewValidationError("constructor", "conversation repository is required")
	}
	if provider == nil {
		return nil, convservice.NewValidationError("constructor", "completion provider is required")
	}

	config := convservice.DefaultConfig()
	if historyWindow > 0 {
		config.HistoryWindow = historyWindow
	}
	if err := config.Validate(); err != nil {
		return nil, convservice.NewValidationError("config", err.Error())
	}

	return &ConversationService{
		config:   config,
		repo:     repo,
		provider: provider,
		logger:   NewLogger("conversation"),
		now:      time.Now,
		state:    convservice.StateUninitialized,
	}, nil
}

// Start performs the initial load. The Loading -> Ready transition happens
// exactly once per session; later calls are no-ops. Until Ready, saves are
// skipped so a slow load can never be clobbered by an empty list.
func (s *ConversationService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != convservice.StateUninitialized {
		return nil
	}
	s.state = convservice.StateLoading

	conv, err := s.repo.Load(ctx)
	if err != nil {
		// Load never fails by contract, but guard the state machine anyway.
		s.state = convservice.StateUninitialized
		return err
	}

	s.messages = conv
	s.state = convservice.StateReady
	s.logger.Info("conversation ready", "message_count", len(conv))
	return nil
}

// Messages returns a copy of the current conversation.
func (s *ConversationService) Messages() (domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != convservice.StateReady {
		return nil, convservice.NewStateError("messages", s.state)
	}
	out := make(domain.Conversation, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// SendMessage runs one user turn: append the user message, ask the
// completion provider for a reply with the trimmed history, append the
// reply (or the error text), persisting after each mutation.
func (s *ConversationService) SendMessage(ctx context.Context, text string) (*TurnResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, convservice.NewValidationError("send_message", "message cannot be empty")
	}

	s.mu.Lock()
	if s.state != convservice.StateReady {
		s.mu.Unlock()
		return nil, convservice.NewStateError("send_message", s.state)
	}

	userMsg := domain.NewUserMessage(trimmed, s.now())
	history := s.buildHistory()
	s.messages = domain.Append(s.messages, userMsg)
	s.persistLocked(ctx)
	s.mu.Unlock()

	reply, err := s.provider.Complete(ctx, userMsg.Text, history)
	failed := err != nil
	if failed {
		s.logger.Error("completion failed", "error", err)
		reply = errorReplyText(err)
	}

	s.mu.Lock()
	assistantMsg := domain.NewAssistantMessage(reply, s.now())
	s.messages = domain.Append(s.messages, assistantMsg)
	s.persistLocked(ctx)
	s.mu.Unlock()

	return &TurnResult{UserMessage: userMsg, Reply: assistantMsg, Failed: failed}, nil
}

// PostAssistantNotice appends an assistant-authored notice (e.g. a care
// reminder) without going through the completion provider.
func (s *ConversationService) PostAssistantNotice(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return convservice.NewValidationError("post_notice", "notice text cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != convservice.StateReady {
		return convservice.NewStateError("post_notice", s.state)
	}
	s.messages = domain.Append(s.messages, domain.NewAssistantMessage(text, s.now()))
	s.persistLocked(ctx)
	return nil
}

// Reset discards the history and re-seeds the welcome conversation.
func (s *ConversationService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != convservice.StateReady {
		return convservice.NewStateError("reset", s.state)
	}
	s.messages = domain.NewWelcomeConversation(s.now())
	s.persistLocked(ctx)
	return nil
}

// buildHistory maps the conversation to the provider's role vocabulary,
// excluding the welcome message (sentinel ID match only) and capping to the
// configured window. Callers must hold s.mu.
func (s *ConversationService) buildHistory() []ai.PromptMessage {
	history := make([]ai.PromptMessage, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.IsWelcome() {
			continue
		}
		role := ai.RoleUser
		if msg.Author == domain.AuthorAssistant {
			role = ai.RoleAssistant
		}
		history = append(history, ai.PromptMessage{Role: role, Content: msg.Text})
	}
	if len(history) > s.config.HistoryWindow {
		history = history[len(history)-s.config.HistoryWindow:]
	}
	return history
}

// persistLocked writes the current conversation. Best-effort: a failed
// write is logged, the in-memory state is never rolled back. Callers must
// hold s.mu.
func (s *ConversationService) persistLocked(ctx context.Context) {
	if s.state != convservice.StateReady {
		return
	}
	if err := s.repo.Save(ctx, s.messages); err != nil {
		s.logger.Error("failed to persist conversation", "error", err, "message_count", len(s.messages))
	}
}

// errorReplyText turns a completion failure into the assistant-authored
// message shown in the conversation.
func errorReplyText(err error) string {
	if ai.IsConfigError(err) {
		return fmt.Sprintf("I can't reach my assistant service right now: %s. Please ask your caregiver to check the app setup.", ai.UserMessage(err))
	}
	return fmt.Sprintf("I'm having trouble answering right now: %s. Let's try again in a moment.", ai.UserMessage(err))
}

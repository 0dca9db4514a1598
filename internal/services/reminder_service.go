// File: internal/services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/careloop/go-companion/internal/domain"
	remrepo "github.com/careloop/go-companion/internal/repository/reminder"
	convservice "github.com/careloop/go-companion/internal/services/conversation"
)

// NoticePoster receives reminder notices. Satisfied by ConversationService.
type NoticePoster interface {
	PostAssistantNotice(ctx context.Context, text string) error
}

// ReminderService schedules recurring care reminders. When a reminder
// fires, its label is posted into the conversation as an assistant notice
// so the resident sees it in the same place they talk to the companion.
type ReminderService struct {
	repo   remrepo.ReminderRepository
	poster NoticePoster
	logger Logger
	now    func() time.Time

	mu        sync.Mutex
	cron      *cron.Cron
	entries   map[string]cron.EntryID
	reminders []domain.Reminder
	started   bool
}

func NewReminderService(repo remrepo.ReminderRepository, poster NoticePoster) (*ReminderService, error) {
	if repo == nil {
		return nil, convservice.NewValidationError("constructor", "reminder repository is required")
	}
	if poster == nil {
		return nil, convservice.NewValidationError("constructor", "notice poster is required")
	}
	return &ReminderService{
		repo:    repo,
		poster:  poster,
		logger:  NewLogger("reminders"),
		now:     time.Now,
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}, nil
}

// Start loads persisted reminders, schedules them, and starts the cron
// runner. Reminders whose stored schedule no longer parses are skipped,
// not dropped from storage.
func (s *ReminderService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	reminders, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.reminders = reminders

	for _, r := range reminders {
		if err := s.scheduleLocked(r); err != nil {
			s.logger.Warn("skipping reminder with invalid schedule",
				"reminder_id", r.ID, "schedule", r.Schedule, "error", err)
		}
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("reminder scheduler started", "reminder_count", len(reminders))
	return nil
}

// Stop halts the cron runner and waits for any in-flight jobs.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.started = false
}

// List returns a copy of the current reminders.
func (s *ReminderService) List() []domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Add validates the cron schedule, persists the new reminder, and
// schedules it immediately.
func (s *ReminderService) Add(ctx context.Context, label, schedule string) (domain.Reminder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Reminder{}, convservice.NewValidationError("add_reminder", "reminder label cannot be empty")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return domain.Reminder{}, convservice.NewValidationError("add_reminder",
			fmt.Sprintf("invalid schedule %q: %v", schedule, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reminder := domain.NewReminder(label, schedule, s.now())
	updated := append(append([]domain.Reminder{}, s.reminders...), reminder)
	if err := s.repo.Save(ctx, updated); err != nil {
		return domain.Reminder{}, err
	}
	s.reminders = updated

	if err := s.scheduleLocked(reminder); err != nil {
		// Parse already succeeded, so this should not happen.
		s.logger.Error("failed to schedule reminder", "reminder_id", reminder.ID, "error", err)
	}
	s.logger.Info("reminder added", "reminder_id", reminder.ID, "schedule", schedule)
	return reminder, nil
}

// Remove unschedules and deletes a reminder by ID.
func (s *ReminderService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.reminders {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return convservice.NewValidationError("remove_reminder", "reminder not found")
	}

	updated := append(append([]domain.Reminder{}, s.reminders[:idx]...), s.reminders[idx+1:]...)
	if err := s.repo.Save(ctx, updated); err != nil {
		return err
	}
	s.reminders = updated

	if entryID, ok := s.entries[id]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}
	s.logger.Info("reminder removed", "reminder_id", id)
	return nil
}

// scheduleLocked registers the cron job for one reminder. Callers must
// hold s.mu.
func (s *ReminderService) scheduleLocked(r domain.Reminder) error {
	label := r.Label
	entryID, err := s.cron.AddFunc(r.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.poster.PostAssistantNotice(ctx, fmt.Sprintf("Reminder: %s", label)); err != nil {
			s.logger.Error("failed to post reminder notice", "reminder_id", r.ID, "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.entries[r.ID] = entryID
	return nil
}

package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careloop/go-companion/internal/domain"
	"github.com/careloop/go-companion/internal/storage"
)

// failingStore simulates a broken device store.
type failingStore struct {
	getErr error
	setErr error
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}
func (f *failingStore) Set(context.Context, string, string) error { return f.setErr }
func (f *failingStore) Close() error                              { return nil }

func TestLoadSeedsOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(storage.NewMemoryStore())

	conv, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(conv) != 1 {
		t.Fatalf("expected 1 seeded message, got %d", len(conv))
	}
	if conv[0].Author != domain.AuthorAssistant {
		t.Errorf("expected assistant welcome, got author %q", conv[0].Author)
	}
	if !conv[0].IsWelcome() {
		t.Errorf("expected seeded message to carry the welcome sentinel ID")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(storage.NewMemoryStore())

	base := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	conv := domain.NewWelcomeConversation(base)
	conv = domain.Append(conv, domain.NewUserMessage("How did I sleep last night?", base.Add(time.Minute)))
	conv = domain.Append(conv, domain.NewAssistantMessage("You slept 7 hours.", base.Add(2*time.Minute)))

	if err := repo.Save(ctx, conv); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != len(conv) {
		t.Fatalf("expected %d messages, got %d", len(conv), len(loaded))
	}
	for i := range conv {
		if loaded[i].ID != conv[i].ID {
			t.Errorf("message %d: ID %q != %q", i, loaded[i].ID, conv[i].ID)
		}
		if loaded[i].Text != conv[i].Text {
			t.Errorf("message %d: text %q != %q", i, loaded[i].Text, conv[i].Text)
		}
		if loaded[i].Author != conv[i].Author {
			t.Errorf("message %d: author %q != %q", i, loaded[i].Author, conv[i].Author)
		}
		want := conv[i].CreatedAt.Truncate(time.Millisecond)
		got := loaded[i].CreatedAt.Truncate(time.Millisecond)
		if !got.Equal(want) {
			t.Errorf("message %d: timestamp %v != %v", i, got, want)
		}
	}
}

func TestSaveOverwritesPriorValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewConversationRepository(store)

	now := time.Now()
	first := domain.NewWelcomeConversation(now)
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := domain.Append(first, domain.NewUserMessage("hello", now))
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("expected full overwrite with 2 messages, got %d", len(loaded))
	}
}

func TestLoadRecoversFromCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewConversationRepository(store)

	cases := []string{
		"not json at all",
		`{"id":"x"}`, // object, not array
		`[{"id":"1","text":"hi","author":"assistant","timestamp":"yesterday"}]`,
		`[{"id":"1","text":"hi","author":"robot","timestamp":"2026-03-14T09:26:53Z"}]`,
	}
	for _, payload := range cases {
		if err := store.Set(ctx, StorageKey, payload); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		conv, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load returned error for payload %q: %v", payload, err)
		}
		if len(conv) != 1 || !conv[0].IsWelcome() {
			t.Errorf("expected seeded welcome for payload %q, got %d messages", payload, len(conv))
		}
	}
}

func TestLoadRecoversFromReadError(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(&failingStore{getErr: errors.New("disk unavailable")})

	conv, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load should recover, got error: %v", err)
	}
	if len(conv) != 1 || !conv[0].IsWelcome() {
		t.Errorf("expected seeded welcome conversation, got %d messages", len(conv))
	}
}

func TestSaveReportsWriteFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(&failingStore{setErr: errors.New("disk full")})

	err := repo.Save(ctx, domain.NewWelcomeConversation(time.Now()))
	if err == nil {
		t.Fatalf("expected write failure to surface")
	}
}

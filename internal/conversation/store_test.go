package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eleven-am/voicenotes/internal/recording"
	"github.com/eleven-am/voicenotes/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store := NewStore(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func record(convID string, seq int, text string) recording.Record {
	return recording.Record{
		ID:             shared.NewID("msg_"),
		SessionID:      "rec_test",
		ConversationID: convID,
		Text:           text,
		Source:         recording.SourceRemote,
		Duration:       30 * time.Second,
		Seq:            seq,
		CreatedAt:      time.Now(),
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, err := store.Create(ctx, "Morning notes")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(conv.ID, "conv_") {
		t.Errorf("id = %q", conv.ID)
	}

	got, err := store.GetByID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Morning notes" {
		t.Errorf("title = %q", got.Title)
	}

	if _, err := store.GetByID(ctx, "conv_missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("missing lookup error = %v", err)
	}
}

func TestStore_AppendOrdersBySeq(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "Notes")

	// remote jobs finalize out of order; seq restores chronology
	for _, seq := range []int{2, 1, 3} {
		if err := store.Append(ctx, record(conv.ID, seq, "segment")); err != nil {
			t.Fatalf("Append(%d) error = %v", seq, err)
		}
	}

	msgs, err := store.Messages(ctx, conv.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	for i, msg := range msgs {
		if msg.Seq != i+1 {
			t.Errorf("msgs[%d].Seq = %d, want %d", i, msg.Seq, i+1)
		}
	}
}

func TestStore_AppendTitlesUntitledConversation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "")
	if err := store.Append(ctx, record(conv.ID, 1, "remember to buy oat milk and call the bank")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, _ := store.GetByID(ctx, conv.ID)
	if got.Title == "" {
		t.Fatal("conversation still untitled after first message")
	}

	// a later message must not rename it
	store.Append(ctx, record(conv.ID, 2, "something else entirely"))
	after, _ := store.GetByID(ctx, conv.ID)
	if after.Title != got.Title {
		t.Errorf("title changed from %q to %q", got.Title, after.Title)
	}
}

func TestStore_AppendKeepsExplicitTitle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "Grocery run")
	store.Append(ctx, record(conv.ID, 1, "remember to buy oat milk"))

	got, _ := store.GetByID(ctx, conv.ID)
	if got.Title != "Grocery run" {
		t.Errorf("title = %q, want the explicit one", got.Title)
	}
}

func TestStore_ListCountsMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a, _ := store.Create(ctx, "A")
	b, _ := store.Create(ctx, "B")
	store.Append(ctx, record(a.ID, 1, "one"))
	store.Append(ctx, record(a.ID, 2, "two"))

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	counts := make(map[string]int)
	for _, l := range listed {
		counts[l.ID] = l.MessageCount
	}
	if counts[a.ID] != 2 {
		t.Errorf("count[a] = %d, want 2", counts[a.ID])
	}
	if counts[b.ID] != 0 {
		t.Errorf("count[b] = %d, want 0", counts[b.ID])
	}
}

func TestStore_DeleteRemovesMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "Doomed")
	store.Append(ctx, record(conv.ID, 1, "gone soon"))

	if err := store.Delete(ctx, conv.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByID(ctx, conv.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("conversation survives delete: %v", err)
	}
	msgs, _ := store.Messages(ctx, conv.ID)
	if len(msgs) != 0 {
		t.Errorf("orphan messages = %d", len(msgs))
	}

	if err := store.Delete(ctx, "conv_missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("delete missing = %v", err)
	}
}

func TestStore_Rename(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	conv, _ := store.Create(ctx, "Old")
	got, err := store.Rename(ctx, conv.ID, "New")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if got.Title != "New" {
		t.Errorf("title = %q", got.Title)
	}

	if _, err := store.Rename(ctx, "conv_missing", "X"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("rename missing = %v", err)
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "short text as-is", text: "buy oat milk", want: "buy oat milk"},
		{name: "trims whitespace", text: "  buy oat milk  ", want: "buy oat milk"},
		{
			name: "long text cut at a word boundary",
			text: "this is a rather long opening sentence that keeps going well past the cap",
			want: "this is a rather long opening sentence that…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveTitle(tt.text); got != tt.want {
				t.Errorf("deriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := deriveTitle(strings.Repeat("x", 100)); len(got) > titleMaxLen+len("…") {
		t.Errorf("unbroken word title too long: %q", got)
	}
}

package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/eleven-am/voicenotes/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func newTestStore(t *testing.T, envOverride string) *Store {
	store := NewStore(setupTestDB(t), envOverride)
	if err := store.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return store
}

func TestStore_SetAndGet(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	cred, err := store.Set(ctx, ProviderCloudTranscription, "sk-proj-abc123def456")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cred.ID == "" {
		t.Error("expected generated ID")
	}
	if !cred.IsUsable() {
		t.Error("expected stored key to be usable")
	}

	got, err := store.Get(ctx, ProviderCloudTranscription)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Value != "sk-proj-abc123def456" {
		t.Errorf("value = %q", got.Value)
	}
}

func TestStore_SetReplacesExisting(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	if _, err := store.Set(ctx, ProviderCloudTranscription, "sk-first-key-value"); err != nil {
		t.Fatalf("first Set() error = %v", err)
	}
	if _, err := store.Set(ctx, ProviderCloudTranscription, "sk-second-key-value"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	var count int64
	store.db.Model(&Credential{}).Count(&count)
	if count != 1 {
		t.Errorf("credential rows = %d, want 1", count)
	}

	got, err := store.Get(ctx, ProviderCloudTranscription)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Value != "sk-second-key-value" {
		t.Errorf("value = %q, want the replacement", got.Value)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t, "")

	_, err := store.Get(context.Background(), ProviderCloudTranscription)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	if _, err := store.Set(ctx, ProviderCloudTranscription, "sk-to-be-removed"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Clear(ctx, ProviderCloudTranscription); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := store.Clear(ctx, ProviderCloudTranscription); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("second Clear() = %v, want ErrNotFound", err)
	}
}

func TestStore_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing configured", func(t *testing.T) {
		store := newTestStore(t, "")
		if _, ok := store.Resolve(ctx); ok {
			t.Error("resolved a key with nothing configured")
		}
	})

	t.Run("stored key", func(t *testing.T) {
		store := newTestStore(t, "")
		store.Set(ctx, ProviderCloudTranscription, "sk-stored-key-value")
		key, ok := store.Resolve(ctx)
		if !ok || key != "sk-stored-key-value" {
			t.Errorf("Resolve() = %q, %v", key, ok)
		}
	})

	t.Run("env override wins", func(t *testing.T) {
		store := newTestStore(t, "sk-env-override")
		store.Set(ctx, ProviderCloudTranscription, "sk-stored-key-value")
		key, ok := store.Resolve(ctx)
		if !ok || key != "sk-env-override" {
			t.Errorf("Resolve() = %q, %v", key, ok)
		}
	})

	t.Run("placeholder never resolves", func(t *testing.T) {
		store := newTestStore(t, "")
		store.Set(ctx, ProviderCloudTranscription, "YOUR_API_KEY")
		if _, ok := store.Resolve(ctx); ok {
			t.Error("placeholder resolved as usable")
		}
	})

	t.Run("placeholder env falls through to store", func(t *testing.T) {
		store := newTestStore(t, "CHANGE_ME")
		store.Set(ctx, ProviderCloudTranscription, "sk-stored-key-value")
		key, ok := store.Resolve(ctx)
		if !ok || key != "sk-stored-key-value" {
			t.Errorf("Resolve() = %q, %v", key, ok)
		}
	})
}

func TestCredential_Masked(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "long key", value: "sk-proj-abcdef1234", want: "sk-p…1234"},
		{name: "short key", value: "sk-short", want: "********"},
		{name: "empty", value: "", want: "********"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Credential{Value: tt.value}
			if got := c.Masked(); got != tt.want {
				t.Errorf("Masked() = %q, want %q", got, tt.want)
			}
		})
	}
}

package credential

import (
	"context"
	"errors"

	"github.com/eleven-am/voicenotes/internal/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Source is what the transcription pipeline sees: an optional, possibly absent
// cloud API key. Injected into the coordinator at construction, never ambient.
type Source interface {
	Resolve(ctx context.Context) (key string, ok bool)
}

type Store struct {
	db  *gorm.DB
	env string
}

// NewStore builds a credential store. envOverride, when non-placeholder, wins over
// anything persisted — it is how deployments pin a key without touching the DB.
func NewStore(db *gorm.DB, envOverride string) *Store {
	return &Store{db: db, env: envOverride}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Credential{})
}

func (s *Store) Set(ctx context.Context, provider, value string) (*Credential, error) {
	cred := &Credential{
		ID:       shared.NewID("cred_"),
		Provider: provider,
		Value:    value,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(cred).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, provider)
}

func (s *Store) Get(ctx context.Context, provider string) (*Credential, error) {
	var cred Credential
	err := s.db.WithContext(ctx).Where("provider = ?", provider).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &cred, err
}

func (s *Store) Clear(ctx context.Context, provider string) error {
	result := s.db.WithContext(ctx).Delete(&Credential{}, "provider = ?", provider)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Resolve returns the usable cloud transcription key, env override first.
func (s *Store) Resolve(ctx context.Context) (string, bool) {
	if env := (&Credential{Value: s.env}); env.IsUsable() {
		return s.env, true
	}

	cred, err := s.Get(ctx, ProviderCloudTranscription)
	if err != nil || !cred.IsUsable() {
		return "", false
	}
	return cred.Value, true
}

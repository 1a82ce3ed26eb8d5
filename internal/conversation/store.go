package conversation

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/eleven-am/voicenotes/internal/recording"
	"github.com/eleven-am/voicenotes/internal/shared"
	"gorm.io/gorm"
)

const titleMaxLen = 48

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Conversation{}, &Message{})
}

func (s *Store) Create(ctx context.Context, title string) (*Conversation, error) {
	conv := &Conversation{
		ID:    shared.NewID("conv_"),
		Title: title,
	}
	if err := s.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &conv, err
}

// ListedConversation is a Conversation plus its message count, produced by the
// list query.
type ListedConversation struct {
	Conversation
	MessageCount int `json:"message_count"`
}

func (s *Store) List(ctx context.Context) ([]ListedConversation, error) {
	var out []ListedConversation
	err := s.db.WithContext(ctx).Model(&Conversation{}).
		Select("conversations.*, count(messages.id) as message_count").
		Joins("left join messages on messages.conversation_id = conversations.id").
		Group("conversations.id").
		Order("conversations.updated_at desc").
		Find(&out).Error
	return out, err
}

// Messages returns the conversation's transcript in chronological order.
func (s *Store) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var msgs []Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("seq asc, created_at asc").
		Find(&msgs).Error
	return msgs, err
}

func (s *Store) Rename(ctx context.Context, id, title string) (*Conversation, error) {
	result := s.db.WithContext(ctx).Model(&Conversation{}).
		Where("id = ?", id).
		Update("title", title)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Message{}, "conversation_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&Conversation{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Append persists one finalized transcript record. It feeds the recording
// pipeline's sink: the first message of an untitled conversation also names it.
func (s *Store) Append(ctx context.Context, rec recording.Record) error {
	msg := &Message{
		ID:             rec.ID,
		ConversationID: rec.ConversationID,
		SessionID:      rec.SessionID,
		Text:           rec.Text,
		Source:         string(rec.Source),
		DurationMS:     rec.Duration.Milliseconds(),
		Seq:            rec.Seq,
		CreatedAt:      rec.CreatedAt,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		updates := map[string]any{"updated_at": time.Now()}
		var conv Conversation
		if err := tx.Where("id = ?", rec.ConversationID).First(&conv).Error; err == nil && conv.Title == "" {
			updates["title"] = deriveTitle(rec.Text)
		}
		return tx.Model(&Conversation{}).Where("id = ?", rec.ConversationID).Updates(updates).Error
	})
}

// deriveTitle takes the leading words of the first transcript, capped at
// titleMaxLen without splitting a word.
func deriveTitle(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= titleMaxLen {
		return text
	}

	cut := strings.LastIndexFunc(text[:titleMaxLen+1], unicode.IsSpace)
	if cut <= 0 {
		cut = titleMaxLen
	}
	return strings.TrimRightFunc(text[:cut], unicode.IsSpace) + "…"
}

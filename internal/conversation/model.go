package conversation

import "time"

// Conversation groups the transcript messages of one note-taking thread. The
// title starts empty and is derived from the first finalized message.
type Conversation struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one finalized transcript record. Seq carries segment-close order
// within the recording session, so ordering by it restores chronology even
// when remote jobs finalized out of order.
type Message struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"index;not null" json:"conversation_id"`
	SessionID      string    `gorm:"index" json:"session_id"`
	Text           string    `gorm:"not null" json:"text"`
	Source         string    `gorm:"not null" json:"source"`
	DurationMS     int64     `json:"duration_ms"`
	Seq            int       `json:"seq"`
	CreatedAt      time.Time `json:"created_at"`
}

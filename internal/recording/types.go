package recording

import (
	"context"
	"time"
)

// Source tags which engine produced a transcript record.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Record is the durable output unit: exactly one per closed segment with
// non-empty text. Immutable once emitted.
type Record struct {
	ID             string        `json:"id"`
	SessionID      string        `json:"session_id"`
	ConversationID string        `json:"conversation_id"`
	Text           string        `json:"text"`
	Source         Source        `json:"source"`
	Duration       time.Duration `json:"duration"`
	Seq            int           `json:"seq"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Sink receives finalized records. Records arrive in finalization order; Seq
// carries segment-close order for consumers that need strict chronology.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// CaptureSession is the recorder surface the coordinator drives.
type CaptureSession interface {
	Start() error
	WriteFrame(frame []byte) error
	CutArtifact() (string, error)
	Stop() (string, error)
}

// State of a coordinator's segmentation clock.
type State string

const (
	StateRecording State = "recording"
	StateIdle      State = "idle"
)

// Callbacks deliver live pipeline output to the transport layer. All callbacks
// fire from the coordinator's run loop and must not block.
type Callbacks struct {
	OnPartial func(sessionID, text string)
	OnStatus  func(sessionID string, status QueueStatus)
	OnRecord  func(rec Record)
	OnError   func(sessionID string, err error)
}

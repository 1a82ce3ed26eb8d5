package transcription

import "context"

// Transcriber performs exactly one transcription attempt per call. Retry policy
// lives with the caller, never here.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

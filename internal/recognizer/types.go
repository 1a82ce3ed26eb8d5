package recognizer

import "github.com/eleven-am/voicenotes/internal/shared"

type Config struct {
	URL     string
	Token   string
	Backoff shared.BackoffConfig
}

type SessionOptions struct {
	Language   string
	SampleRate int
	Partials   bool
}

// Callbacks are invoked from the client's read loop. OnPartial delivers the full
// transcript accumulated so far for the current utterance; consumers diff against
// the last-seen length to extract only the newly appended text.
type Callbacks struct {
	OnReady   func()
	OnPartial func(text string)
	OnError   func(error)
}

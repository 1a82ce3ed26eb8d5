package recognizer

// Recognizer streams audio to an on-device/sidecar speech engine and reports
// incremental partial transcripts through Callbacks.
type Recognizer interface {
	SendAudio(frame []byte) error
	Restart() error
	Close() error
}

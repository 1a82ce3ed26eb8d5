package transcription

import "time"

type Config struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// Request carries one finalized audio artifact to the cloud endpoint.
type Request struct {
	ArtifactPath string
	APIKey       string
	Language     string
}

type Result struct {
	Text string
}

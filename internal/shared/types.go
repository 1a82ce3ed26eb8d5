package shared

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier, e.g. "conv_" + a dashless UUID.
func NewID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}

// BackoffConfig controls reconnect pacing for streaming clients.
type BackoffConfig struct {
	Initial     time.Duration
	MaxAttempts int
	MaxDelay    time.Duration
}

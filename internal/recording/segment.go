package recording

import (
	"strings"
	"time"
)

// segment is the open window of captured speech. Exactly one segment is open at
// a time while recording; all fields are owned by the coordinator's run loop.
type segment struct {
	start time.Time
	text  strings.Builder
}

func newSegment(start time.Time) *segment {
	return &segment{start: start}
}

func (s *segment) append(text string) {
	s.text.WriteString(text)
}

func (s *segment) trimmed() string {
	return strings.TrimSpace(s.text.String())
}

func (s *segment) elapsed(now time.Time) time.Duration {
	return now.Sub(s.start)
}

// shift moves the segment's start forward by the given pause duration so time
// spent in a transient interruption does not count against the window.
func (s *segment) shift(pause time.Duration) {
	s.start = s.start.Add(pause)
}

// partialDiff extracts only newly appended text from a recognizer partial, which
// always carries the full transcript so far. A shrinking partial means the
// recognizer restarted its utterance; the new text is taken from its beginning.
type partialDiff struct {
	lastLen int
}

func (d *partialDiff) extract(full string) string {
	if len(full) < d.lastLen {
		d.lastLen = 0
	}
	appended := full[d.lastLen:]
	d.lastLen = len(full)
	return appended
}

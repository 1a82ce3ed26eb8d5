package recording

import "fmt"

type QueueStatusKind string

const (
	QueueIdle       QueueStatusKind = "idle"
	QueueQueued     QueueStatusKind = "queued"
	QueueProcessing QueueStatusKind = "processing"
	QueueOffline    QueueStatusKind = "offline"
)

// QueueStatus is derived, never independently mutated: it is recomputed after
// every queue transition. Offline wins over everything else.
type QueueStatus struct {
	Kind  QueueStatusKind `json:"status"`
	Count int             `json:"count,omitempty"`
}

func deriveStatus(networkAvailable bool, active, pending int) QueueStatus {
	switch {
	case !networkAvailable:
		return QueueStatus{Kind: QueueOffline, Count: active + pending}
	case active > 0:
		return QueueStatus{Kind: QueueProcessing, Count: active}
	case pending > 0:
		return QueueStatus{Kind: QueueQueued, Count: pending}
	default:
		return QueueStatus{Kind: QueueIdle}
	}
}

func (s QueueStatus) String() string {
	if s.Kind == QueueIdle {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s(%d)", s.Kind, s.Count)
}

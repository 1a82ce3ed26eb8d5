package monitor

import "time"

// RouteChangeReason mirrors the reasons a capture route can move between devices.
type RouteChangeReason string

const (
	RouteNewDeviceAvailable RouteChangeReason = "new_device_available"
	RouteOldDeviceGone      RouteChangeReason = "old_device_unavailable"
	RouteCategoryChange     RouteChangeReason = "category_change"
	RouteOverride           RouteChangeReason = "override"
	RouteUnknown            RouteChangeReason = "unknown"
)

type RouteEvent struct {
	Reason     RouteChangeReason `json:"reason"`
	InputName  string            `json:"input_name,omitempty"`
	OutputName string            `json:"output_name,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

type InterruptionPhase string

const (
	InterruptionBegan InterruptionPhase = "began"
	InterruptionEnded InterruptionPhase = "ended"
)

// InterruptionType carries the platform's hint about what caused the interruption.
type InterruptionType string

const (
	InterruptionTypeDuckOthers      InterruptionType = "duck_others"
	InterruptionTypeBeginOtherAudio InterruptionType = "begin_other_audio"
	InterruptionTypeFull            InterruptionType = "full"
	InterruptionTypeUnknown         InterruptionType = "unknown"
)

type InterruptionEvent struct {
	Phase     InterruptionPhase `json:"phase"`
	Type      InterruptionType  `json:"type,omitempty"`
	Hint      string            `json:"hint,omitempty"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

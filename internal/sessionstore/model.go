package sessionstore

import (
	"strconv"
	"time"
)

type Status string

const (
	StatusRecording Status = "recording"
	StatusDraining  Status = "draining"
	StatusFinished  Status = "finished"
	StatusFailed    Status = "failed"
)

// LiveSession is the externally visible descriptor of one recording session,
// kept in redis so status survives server restarts and is queryable without
// touching the in-process pipeline.
type LiveSession struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Status         Status    `json:"status"`
	QueueStatus    string    `json:"queue_status"`
	QueueCount     int       `json:"queue_count"`
	StartedAt      time.Time `json:"started_at"`
	LastActiveAt   time.Time `json:"last_active_at"`
}

func (s *LiveSession) RedisKey() string {
	return "recsession:" + s.ID
}

// MetricsRedisKey buckets pipeline counters by day and hour.
func MetricsRedisKey(day string, hour int) string {
	return "recmetrics:" + day + ":" + strconv.Itoa(hour)
}

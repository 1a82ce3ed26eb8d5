package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/redis/go-redis/v9"
)

const (
	sessionTTL = 24 * time.Hour
	metricsTTL = 7 * 24 * time.Hour
)

type Store struct {
	redis *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func (s *Store) CreateSession(ctx context.Context, sess *LiveSession) error {
	sess.Status = StatusRecording
	sess.StartedAt = time.Now()
	sess.LastActiveAt = time.Now()

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sess.RedisKey(), data, sessionTTL).Err()
}

func (s *Store) GetSession(ctx context.Context, id string) (*LiveSession, error) {
	data, err := s.redis.Get(ctx, "recsession:"+id).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess LiveSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) UpdateSession(ctx context.Context, sess *LiveSession) error {
	sess.LastActiveAt = time.Now()
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sess.RedisKey(), data, sessionTTL).Err()
}

// UpdateQueue refreshes the persisted queue status for a live session.
func (s *Store) UpdateQueue(ctx context.Context, id, queueStatus string, count int) error {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}
	sess.QueueStatus = queueStatus
	sess.QueueCount = count
	return s.UpdateSession(ctx, sess)
}

func (s *Store) EndSession(ctx context.Context, id string, status Status) error {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return err
	}
	sess.Status = status
	return s.UpdateSession(ctx, sess)
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.redis.Del(ctx, "recsession:"+id).Err()
}

func (s *Store) ListSessions(ctx context.Context) ([]*LiveSession, error) {
	keys, err := s.redis.Keys(ctx, "recsession:rec_*").Result()
	if err != nil {
		return nil, err
	}

	var sessions []*LiveSession
	for _, key := range keys {
		data, err := s.redis.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var sess LiveSession
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}
	return sessions, nil
}

// IncrementMetric bumps one pipeline counter in the current hour bucket.
func (s *Store) IncrementMetric(ctx context.Context, field string, value int64) error {
	now := time.Now().UTC()
	key := MetricsRedisKey(now.Format("2006-01-02"), now.Hour())

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, field, value)
	pipe.Expire(ctx, key, metricsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) IncrementLocalRecords(ctx context.Context) error {
	return s.IncrementMetric(ctx, "records_local", 1)
}

func (s *Store) IncrementRemoteRecords(ctx context.Context) error {
	return s.IncrementMetric(ctx, "records_remote", 1)
}

func (s *Store) IncrementErrors(ctx context.Context) error {
	return s.IncrementMetric(ctx, "error_count", 1)
}

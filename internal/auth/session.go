package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SessionTTL    = 24 * time.Hour
	SessionCookie = "session_id"
)

// SessionStore binds opaque session ids to user ids, server-side.
type SessionStore interface {
	Create(ctx context.Context, userID int) (string, error)
	Get(ctx context.Context, sessionID string) (int, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessions stores sessions in Redis under session:<uuid> with a 24h TTL.
type RedisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) *RedisSessions {
	return &RedisSessions{rdb: rdb}
}

// Create stores a new session mapping sessionID -> userID.
func (s *RedisSessions) Create(ctx context.Context, userID int) (string, error) {
	sid := uuid.New().String()
	err := s.rdb.Set(ctx, "session:"+sid, strconv.Itoa(userID), SessionTTL).Err()
	return sid, err
}

// Get returns the userID for a session, or 0 if not found / expired.
func (s *RedisSessions) Get(ctx context.Context, sessionID string) (int, error) {
	val, err := s.rdb.Get(ctx, "session:"+sessionID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	uid, err := strconv.Atoi(val)
	if err != nil {
		return 0, nil
	}
	return uid, nil
}

// Delete removes a session.
func (s *RedisSessions) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, "session:"+sessionID).Err()
}

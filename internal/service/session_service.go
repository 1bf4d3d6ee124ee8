package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued access tokens so they can be revoked before
// they expire.
type SessionStore interface {
	Register(ctx context.Context, employeeID int64, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, employeeID int64, tokenID string) (bool, error)
	Revoke(ctx context.Context, employeeID int64, tokenID string) error
}

// NewSessionStore returns a Redis backed store, or a stateless one when
// client is nil.
func NewSessionStore(client *redis.Client) SessionStore {
	if client == nil {
		return statelessSessions{}
	}
	return &redisSessionStore{client: client}
}

type redisSessionStore struct {
	client *redis.Client
}

func sessionKey(employeeID int64, tokenID string) string {
	return fmt.Sprintf("access_token:%d:%s", employeeID, tokenID)
}

func (s *redisSessionStore) Register(ctx context.Context, employeeID int64, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(employeeID, tokenID), "valid", ttl).Err()
}

func (s *redisSessionStore) IsActive(ctx context.Context, employeeID int64, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(employeeID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, employeeID int64, tokenID string) error {
	return s.client.Del(ctx, sessionKey(employeeID, tokenID)).Err()
}

// statelessSessions accepts every signed token until it expires.
type statelessSessions struct{}

func (statelessSessions) Register(context.Context, int64, string, time.Duration) error { return nil }

func (statelessSessions) IsActive(context.Context, int64, string) (bool, error) { return true, nil }

func (statelessSessions) Revoke(context.Context, int64, string) error { return nil }

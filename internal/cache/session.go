package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dearyou/dearyou/internal/model"
)

const (
	// sessionKeyPrefix is the Redis key prefix for server-side sessions.
	sessionKeyPrefix = "session:"
)

// ErrSessionNotFound indicates no session exists for the given token.
var ErrSessionNotFound = errors.New("session not found")

// cachedSession is the Redis representation of a session.
// The token is the key, so only the identity fields are stored.
type cachedSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SetSession stores a session under its token with the given TTL.
func (c *Cache) SetSession(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(cachedSession{
		UserID: sess.UserID,
		Email:  sess.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, sessionKey(sess.Token), data, ttl).Err()
}

// GetSession retrieves a session by token.
// Returns ErrSessionNotFound if the token is unknown or expired.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var cached cachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted entry - treat as missing so the user just logs in again.
		return nil, ErrSessionNotFound
	}

	return &model.Session{
		Token:  token,
		UserID: cached.UserID,
		Email:  cached.Email,
	}, nil
}

// DeleteSession removes a session by token.
// Deleting an absent token is not an error, which makes logout idempotent.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

// sessionKey builds the Redis key for a session token.
func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

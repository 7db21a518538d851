package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// SessionStore tracks live sessions server-side so that logout actually
// revokes a token before it expires.
type SessionStore interface {
	// Create registers a new session for the user and returns its ID.
	Create(ctx context.Context, userID int64) (string, error)
	// Get returns the user ID bound to the session, or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (int64, error)
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// ErrSessionNotFound is returned when a session has been revoked or expired.
var ErrSessionNotFound = fmt.Errorf("session not found")

// redisSessionStore implements SessionStore on Redis with a per-key TTL.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Create(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()
	key := sessionKeyPrefix + sessionID
	if err := s.client.Set(ctx, key, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (int64, error) {
	key := sessionKeyPrefix + sessionID
	userID, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

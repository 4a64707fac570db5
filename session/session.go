// Package session stores authentication tokens in Redis with a TTL.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"filesmanager-backend/models"
)

// Tokens are namespaced so the session keyspace can coexist with other
// Redis users.
const keyPrefix = "auth_"

// Config defines the Redis connection options for the session store.
type Config struct {
	Addr     string
	Password string
}

// RedisStore maps opaque tokens to user IDs. Expiry is enforced by Redis
// itself via per-key TTLs; an expired token simply stops resolving.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a session store on a new Redis client.
func NewRedisStore(cfg Config) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
	return &RedisStore{client: client}
}

// NewRedisStoreWithClient creates a session store on an existing client.
func NewRedisStoreWithClient(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Save associates token with userID for the given TTL.
func (s *RedisStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Resolve returns the user ID associated with token, or ErrUnauthorized if
// the token is absent or expired.
func (s *RedisStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolving session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed session value: %w", err)
	}
	return userID, nil
}

// Delete removes the token. Deleting an absent token is not an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Ping reports whether the Redis backend is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

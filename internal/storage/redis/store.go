package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/Jaro-dev-studio/TriggerTs/pkg/errors"
)

// Store implements storage.Store using Redis. Entries are written with a
// long TTL so abandoned visitor state eventually ages out; every write
// refreshes the clock.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed visitor store. A zero ttl stores entries
// without expiry.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func storeKey(visitorID, key string) string {
	return fmt.Sprintf("storefront:%s:%s", visitorID, key)
}

// Get retrieves a visitor's value from Redis.
func (s *Store) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, storeKey(visitorID, key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("storage key", key)
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores a visitor's value in Redis with the configured TTL.
func (s *Store) Set(ctx context.Context, visitorID, key string, value []byte) error {
	if err := s.client.Set(ctx, storeKey(visitorID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys for a visitor. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, visitorID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = storeKey(visitorID, k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

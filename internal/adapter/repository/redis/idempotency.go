package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

// pendingMarker is written when a key is first claimed, before the handler
// has produced a response.
const pendingMarker = "processing"

// IdempotencyStore records request outcomes in Redis so repeated writes can
// be answered from cache.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore on client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) key(k string) string { return keyPrefix + k }

// CheckAndSet reports whether key was already claimed, returning the recorded
// response if one exists. An unclaimed key is locked with a pending marker so
// concurrent duplicates observe the claim.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	k := s.key(key)

	recorded, err := s.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		return true, recorded, nil
	case !errors.Is(err, redis.Nil):
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, k, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, k, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !claimed {
		// Lost the race; hand back whatever the winner recorded.
		recorded, err := s.client.Get(ctx, k).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, recorded, nil
	}

	return false, nil, nil
}

// Update overwrites key with the final response, refreshing its TTL.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), response, ttl).Err()
}

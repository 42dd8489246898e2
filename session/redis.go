package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLookup stores session bindings as plain string keys with a TTL.
type RedisLookup struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLookup(client *redis.Client, ttl time.Duration) *RedisLookup {
	return &RedisLookup{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return fmt.Sprintf("session:%s:cart", sessionID)
}

// Get treats a missing or malformed value as no binding.
func (r *RedisLookup) Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	val, err := r.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (r *RedisLookup) Set(ctx context.Context, sessionID string, cartID uuid.UUID) error {
	return r.client.Set(ctx, key(sessionID), cartID.String(), r.ttl).Err()
}

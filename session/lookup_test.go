package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisLookup, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLookup(client, time.Hour), mr
}

func TestRedisLookup_Missing(t *testing.T) {
	lookup, _ := setupTestRedis(t)

	id, ok, err := lookup.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestRedisLookup_SetThenGet(t *testing.T) {
	lookup, mr := setupTestRedis(t)
	ctx := context.Background()
	cartID := uuid.New()

	require.NoError(t, lookup.Set(ctx, "abc", cartID))

	id, ok, err := lookup.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cartID, id)

	assert.Equal(t, time.Hour, mr.TTL(key("abc")))
}

func TestRedisLookup_Expires(t *testing.T) {
	lookup, mr := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, lookup.Set(ctx, "abc", uuid.New()))

	mr.FastForward(2 * time.Hour)

	_, ok, err := lookup.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLookup_MalformedValue(t *testing.T) {
	lookup, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(key("abc"), "not-a-uuid"))

	_, ok, err := lookup.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLookup_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { client.Close() })
	lookup := NewRedisLookup(client, time.Hour)

	_, _, err := lookup.Get(context.Background(), "abc")
	assert.Error(t, err)
}

func TestMemoryLookup(t *testing.T) {
	ctx := context.Background()
	lookup := NewMemoryLookup()
	cartID := uuid.New()

	_, ok, err := lookup.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, lookup.Set(ctx, "s1", cartID))
	id, ok, err := lookup.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cartID, id)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	c, err := NewCache(client)
	require.NoError(t, err)
	return c, server
}

func stores(t *testing.T) map[string]Store {
	redisCache, _ := newRedisCache(t)
	return map[string]Store{
		"redis":  redisCache,
		"memory": NewMemoryCache(),
	}
}

func TestNewCache_NilClient(t *testing.T) {
	_, err := NewCache(nil)
	assert.Error(t, err)
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			val, err := store.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Equal(t, "", val)

			require.NoError(t, store.Set(ctx, "k", "v", 0))
			val, err = store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v", val)

			require.NoError(t, store.Set(ctx, "bytes", []byte(`{"a":1}`), time.Minute))
			val, err = store.Get(ctx, "bytes")
			require.NoError(t, err)
			assert.Equal(t, `{"a":1}`, val)

			require.NoError(t, store.Delete(ctx, "k"))
			val, err = store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "", val)
		})
	}
}

func TestStore_DeleteAllAndBatch(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "doctors_cache:1", "doctor", 0))
			require.NoError(t, store.Set(ctx, "doctors_cache:2", "patient", 0))
			require.NoError(t, store.Set(ctx, "doctors_cache", "[]", 0))

			require.NoError(t, store.DeleteAll(ctx, "doctors_cache:*"))
			for _, key := range []string{"doctors_cache:1", "doctors_cache:2"} {
				val, err := store.Get(ctx, key)
				require.NoError(t, err)
				assert.Empty(t, val)
			}
			val, err := store.Get(ctx, "doctors_cache")
			require.NoError(t, err)
			assert.Equal(t, "[]", val)

			require.NoError(t, store.DeleteBatch(ctx, "doctors_cache"))
			require.NoError(t, store.DeleteBatch(ctx))
			val, err = store.Get(ctx, "doctors_cache")
			require.NoError(t, err)
			assert.Empty(t, val)
		})
	}
}

func TestStore_Lock(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			locked, err := store.Lock(ctx, "user_lock:a@b.com", "owner-1", time.Minute)
			require.NoError(t, err)
			assert.True(t, locked)

			locked, err = store.Lock(ctx, "user_lock:a@b.com", "owner-2", time.Minute)
			require.NoError(t, err)
			assert.False(t, locked)

			assert.ErrorIs(t, store.Unlock(ctx, "user_lock:a@b.com", "owner-2"), ErrLockHeld)
			require.NoError(t, store.Unlock(ctx, "user_lock:a@b.com", "owner-1"))

			locked, err = store.Lock(ctx, "user_lock:a@b.com", "owner-2", time.Minute)
			require.NoError(t, err)
			assert.True(t, locked)
		})
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	now = now.Add(2 * time.Minute)

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, server := newRedisCache(t)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	server.FastForward(2 * time.Minute)

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val)
}

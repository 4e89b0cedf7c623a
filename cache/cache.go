package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLockHeld is returned when a lock is owned by someone else.
var ErrLockHeld = errors.New("lock is held by another owner")

// Store is the key-value store behind caching, sessions and locks.
// Get returns "" with a nil error when the key does not exist.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, pattern string) error
	DeleteBatch(ctx context.Context, keys ...string) error
	Lock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, value string) error
}

type Cache struct {
	client *redis.Client
}

// NewCache creates a new Cache instance, ensuring that the client is not nil.
func NewCache(client *redis.Client) (*Cache, error) {
	if client == nil {
		return nil, errors.New("Redis client is not initialized")
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeleteAll(ctx context.Context, pattern string) error {
	// Use SCAN for better efficiency on large datasets
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil // key does not exist
	}
	return val, err
}

func (c *Cache) DeleteBatch(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Lock acquires key for value unless another owner holds it.
func (c *Cache) Lock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// Unlock releases key if value still owns it.
func (c *Cache) Unlock(ctx context.Context, key, value string) error {
	script := redis.NewScript(releaseLockScript)
	result, err := script.Run(ctx, c.client, []string{key}, value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockHeld
	}
	return nil
}

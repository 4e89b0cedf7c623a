package cache

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local Store used when no Redis is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", nil
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return "", nil
	}
	return entry.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = c.entry(value, expiration)
	return nil
}

func (c *MemoryCache) entry(value interface{}, expiration time.Duration) memoryEntry {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	entry := memoryEntry{value: s}
	if expiration > 0 {
		entry.expiresAt = c.now().Add(expiration)
	}
	return entry
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// DeleteAll removes every key matching a glob pattern.
func (c *MemoryCache) DeleteAll(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *MemoryCache) DeleteBatch(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *MemoryCache) Lock(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && !entry.expired(c.now()) {
		return false, nil
	}
	c.entries[key] = c.entry(value, ttl)
	return true, nil
}

func (c *MemoryCache) Unlock(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.expired(c.now()) || entry.value != value {
		return ErrLockHeld
	}
	delete(c.entries, key)
	return nil
}

package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

const defaultCacheCapacity = 500

// CommandCache is the bounded in-process cache backend used when no Redis URL
// is configured. Expiry is lazy: an absolute deadline is computed at Set and
// stale entries are deleted when a read discovers them. There is no background
// sweep; the LRU bound alone caps memory.
type CommandCache struct {
	mu  sync.Mutex
	lru *lruMap
}

func NewCommandCache(capacity int) *CommandCache {
	return &CommandCache{lru: newLRUMap(capacity)}
}

func (c *CommandCache) Get(_ context.Context, key string, now time.Time) (domain.CacheItem, error) {
	key = strings.TrimSpace(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.lru.get(key)
	if !ok {
		return domain.CacheItem{Key: key}, nil
	}
	if entry.Expired(now) {
		c.lru.delete(key)
		return domain.CacheItem{Key: key}, nil
	}
	ttl := int(entry.ExpiresAt.Sub(now).Seconds())
	if ttl < 0 {
		ttl = 0
	}
	return domain.CacheItem{
		Key:        key,
		Value:      append([]byte(nil), entry.Value...),
		Found:      true,
		TTLSeconds: ttl,
	}, nil
}

func (c *CommandCache) Set(_ context.Context, key string, value []byte, op domain.OperationType, now time.Time) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrInvalidInput
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.set(key, domain.CacheEntry{
		Key:       key,
		Value:     append([]byte(nil), value...),
		StoredAt:  now,
		ExpiresAt: now.Add(domain.ResolveTTL(op)),
	})
	return nil
}

func (c *CommandCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.delete(strings.TrimSpace(key))
	return nil
}

func (c *CommandCache) Has(_ context.Context, key string, now time.Time) (bool, error) {
	key = strings.TrimSpace(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.lru.peek(key)
	if !ok {
		return false, nil
	}
	if entry.Expired(now) {
		c.lru.delete(key)
		return false, nil
	}
	return true, nil
}

func (c *CommandCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.clear()
	return nil
}

// Keys lists cached keys oldest-touched first. The port contract allows an
// empty result here; callers must not rely on enumeration.
func (c *CommandCache) Keys(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.keys(), nil
}

// Len reports the current entry count; used by health reporting.
func (c *CommandCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}

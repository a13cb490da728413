package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

// RedisCommandCache stores command results under the service's cache
// namespace. Expiry is delegated to Redis: Set writes with the resolved TTL as
// the key's server-side expiry, so no client-side expiry bookkeeping exists on
// this backend.
type RedisCommandCache struct {
	client *redis.Client
}

func NewRedisCommandCache(client *redis.Client) *RedisCommandCache {
	return &RedisCommandCache{client: client}
}

// storedEntry is the serialized form written to Redis.
type storedEntry struct {
	Value    []byte    `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

func cacheKey(key string) string { return domain.CacheKeyPrefix + strings.TrimSpace(key) }

// decodeStoredEntry parses the serialized envelope. A decode error means the
// stored bytes were not written by this service; the caller treats that as a
// miss and deletes the key.
func decodeStoredEntry(raw []byte) (storedEntry, error) {
	var entry storedEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return storedEntry{}, err
	}
	return entry, nil
}

func (c *RedisCommandCache) Get(ctx context.Context, key string, _ time.Time) (domain.CacheItem, error) {
	key = strings.TrimSpace(key)

	pipe := c.client.Pipeline()
	getCmd := pipe.Get(ctx, cacheKey(key))
	ttlCmd := pipe.TTL(ctx, cacheKey(key))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.CacheItem{}, err
	}

	raw, err := getCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CacheItem{Key: key}, nil
	}
	if err != nil {
		return domain.CacheItem{}, err
	}

	entry, decodeErr := decodeStoredEntry(raw)
	if decodeErr != nil {
		// Malformed data written by another process: drop it and report a miss.
		_ = c.client.Del(ctx, cacheKey(key)).Err()
		return domain.CacheItem{Key: key}, nil
	}

	ttl := 0
	if d, ttlErr := ttlCmd.Result(); ttlErr == nil && d > 0 {
		ttl = int(d.Seconds())
	}
	return domain.CacheItem{Key: key, Value: entry.Value, Found: true, TTLSeconds: ttl}, nil
}

func (c *RedisCommandCache) Set(ctx context.Context, key string, value []byte, op domain.OperationType, now time.Time) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrInvalidInput
	}
	raw, err := json.Marshal(storedEntry{Value: value, StoredAt: now})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(key), raw, domain.ResolveTTL(op)).Err()
}

func (c *RedisCommandCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, cacheKey(key)).Err()
}

func (c *RedisCommandCache) Has(ctx context.Context, key string, _ time.Time) (bool, error) {
	n, err := c.client.Exists(ctx, cacheKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes every key under the cache namespace and nothing else; the
// Redis instance is shared infrastructure, so analytics counters and the
// per-user preference keys other components write must survive.
func (c *RedisCommandCache) Clear(ctx context.Context) error {
	return deleteByPattern(ctx, c.client, domain.CacheKeyPrefix+"*")
}

func (c *RedisCommandCache) Keys(ctx context.Context) ([]string, error) {
	keys, err := scanKeys(ctx, c.client, domain.CacheKeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, domain.CacheKeyPrefix))
	}
	return out, nil
}

func scanKeys(ctx context.Context, client *redis.Client, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

func deleteByPattern(ctx context.Context, client *redis.Client, pattern string) error {
	keys, err := scanKeys(ctx, client, pattern)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}

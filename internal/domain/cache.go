package domain

import "time"

// Key namespaces owned by this service on the shared backend. Clear operations
// are restricted to these prefixes so foreign data on the same Redis instance
// is never touched.
const (
	CacheKeyPrefix     = "app:"
	AnalyticsKeyPrefix = "analytics:"
	UserPrefKeyPrefix  = "pref:user:"
)

// OperationType classifies the bot command whose result is being cached and
// determines how long the entry stays valid.
type OperationType string

const (
	OperationDyeLookup  OperationType = "dye_lookup"
	OperationColorMatch OperationType = "color_match"
	OperationSearch     OperationType = "search"
	OperationCatalog    OperationType = "catalog"
	OperationDefault    OperationType = "default"
)

// ttlByOperation is read-only after startup. Dye catalog data changes only on
// game patches, so it keeps the longest TTL; free-text searches churn fastest.
var ttlByOperation = map[OperationType]time.Duration{
	OperationDyeLookup:  time.Hour,
	OperationColorMatch: 30 * time.Minute,
	OperationSearch:     5 * time.Minute,
	OperationCatalog:    24 * time.Hour,
	OperationDefault:    5 * time.Minute,
}

// ResolveTTL returns the configured TTL for an operation type. Unknown types
// fall back to the default TTL rather than failing.
func ResolveTTL(op OperationType) time.Duration {
	if ttl, ok := ttlByOperation[op]; ok {
		return ttl
	}
	return ttlByOperation[OperationDefault]
}

type CacheEntry struct {
	Key       string
	Value     []byte
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at the given instant.
// Entries with a zero ExpiresAt never expire.
func (e CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// CacheItem is the read projection returned to callers.
type CacheItem struct {
	Key        string
	Value      []byte
	Found      bool
	TTLSeconds int
}

// CacheMetrics counts cache traffic observed by this process since startup.
// Recorded at the application layer, so both backends share one view; the
// counters describe this instance's reads, not the shared backend's.
type CacheMetrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// HitRate is the percentage of lookups that found a live entry, 0 when no
// lookup has happened yet.
func (m CacheMetrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total) * 100
}

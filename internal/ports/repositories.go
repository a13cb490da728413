package ports

import (
	"context"
	"time"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

// CommandCache is the storage contract behind the bot's result cache. Both the
// Redis backend and the bounded in-process backend implement it; the backend is
// chosen once at bootstrap and reused for the process lifetime.
//
// Implementations return errors; converting backend faults into misses and
// no-ops is the application layer's job.
type CommandCache interface {
	Get(ctx context.Context, key string, now time.Time) (domain.CacheItem, error)
	Set(ctx context.Context, key string, value []byte, op domain.OperationType, now time.Time) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string, now time.Time) (bool, error)
	// Clear removes only entries under this service's cache namespace.
	Clear(ctx context.Context) error
	// Keys lists cached keys without their namespace prefix. Backends that
	// cannot enumerate safely may return an empty slice; callers must
	// tolerate that.
	Keys(ctx context.Context) ([]string, error)
}

// CacheMetricsRecorder counts hits, misses and evictions as the application
// layer observes them. Recording failures must never fail the cache operation
// that triggered them.
type CacheMetricsRecorder interface {
	RecordHit(ctx context.Context) error
	RecordMiss(ctx context.Context) error
	RecordEviction(ctx context.Context, count int) error
	Snapshot(ctx context.Context) (domain.CacheMetrics, error)
}

// UsageTracker records command executions and serves aggregate statistics.
type UsageTracker interface {
	TrackCommand(ctx context.Context, event domain.CommandEvent) error
	Stats(ctx context.Context) (domain.CommandStats, error)
	DailyCount(ctx context.Context, day time.Time) (int64, error)
	Clear(ctx context.Context) error
}

package memory

import (
	"context"
	"sync"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

// CacheMetricsRecorder holds the process-local cache counters. It backs the
// metrics surface on both storage backends; counters reset with the process.
type CacheMetricsRecorder struct {
	mu        sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

func NewCacheMetricsRecorder() *CacheMetricsRecorder {
	return &CacheMetricsRecorder{}
}

func (r *CacheMetricsRecorder) RecordHit(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits++
	return nil
}

func (r *CacheMetricsRecorder) RecordMiss(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
	return nil
}

func (r *CacheMetricsRecorder) RecordEviction(_ context.Context, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictions += int64(count)
	return nil
}

func (r *CacheMetricsRecorder) Snapshot(context.Context) (domain.CacheMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.CacheMetrics{Hits: r.hits, Misses: r.misses, Evictions: r.evictions}, nil
}

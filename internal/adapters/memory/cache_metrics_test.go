package memory

import (
	"context"
	"testing"
)

func TestCacheMetricsRecorderCounts(t *testing.T) {
	t.Parallel()

	r := NewCacheMetricsRecorder()
	ctx := context.Background()

	_ = r.RecordHit(ctx)
	_ = r.RecordHit(ctx)
	_ = r.RecordMiss(ctx)
	_ = r.RecordEviction(ctx, 1)
	_ = r.RecordEviction(ctx, 3)

	m, err := r.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if m.Hits != 2 || m.Misses != 1 || m.Evictions != 4 {
		t.Fatalf("unexpected counters: %+v", m)
	}
}

func TestCacheMetricsRecorderStartsAtZero(t *testing.T) {
	t.Parallel()

	m, err := NewCacheMetricsRecorder().Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if m.Hits != 0 || m.Misses != 0 || m.Evictions != 0 {
		t.Fatalf("expected zero counters, got %+v", m)
	}
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

const (
	defaultEventLogCapacity = 1000
	recentErrorLimit        = 10
)

// UsageTracker is the in-process analytics backend. Every command execution is
// appended to a bounded ring log and every aggregate is recomputed by scanning
// the log's current contents on read. Counts are therefore exact but only
// cover the retained window.
type UsageTracker struct {
	mu  sync.Mutex
	log *ringLog
}

func NewUsageTracker(capacity int) *UsageTracker {
	return &UsageTracker{log: newRingLog(capacity)}
}

func (t *UsageTracker) TrackCommand(_ context.Context, event domain.CommandEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.push(event)
	return nil
}

func (t *UsageTracker) Stats(context.Context) (domain.CommandStats, error) {
	t.mu.Lock()
	events := t.log.snapshot()
	t.mu.Unlock()

	stats := domain.ZeroStats()
	users := make(map[string]struct{})
	var successes int64
	var failures []domain.CommandEvent
	for _, e := range events {
		stats.TotalCommands++
		stats.CommandBreakdown[e.CommandName]++
		users[e.UserID] = struct{}{}
		if e.Success {
			successes++
		} else {
			failures = append(failures, e)
		}
	}
	stats.UniqueUsers = int64(len(users))
	if stats.TotalCommands > 0 {
		stats.SuccessRate = float64(successes) / float64(stats.TotalCommands) * 100
	}
	// Newest failure first, matching the Redis backend's LPUSH order.
	for i := len(failures) - 1; i >= 0 && len(stats.RecentErrors) < recentErrorLimit; i-- {
		e := failures[i]
		stats.RecentErrors = append(stats.RecentErrors,
			fmt.Sprintf("%s: %s (%s)", e.CommandName, e.ErrorKind, e.Timestamp.UTC().Format(time.RFC3339)))
	}
	return stats, nil
}

func (t *UsageTracker) DailyCount(_ context.Context, day time.Time) (int64, error) {
	start, end := domain.DayBounds(day)
	t.mu.Lock()
	events := t.log.snapshot()
	t.mu.Unlock()

	var count int64
	for _, e := range events {
		ts := e.Timestamp.UTC()
		if !ts.Before(start) && ts.Before(end) {
			count++
		}
	}
	return count, nil
}

func (t *UsageTracker) Clear(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.clear()
	return nil
}

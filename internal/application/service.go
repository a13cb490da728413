package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

func (s *Service) GetCached(ctx context.Context, actor Actor, key string) (domain.CacheItem, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.CacheItem{}, domain.ErrUnauthorized
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.CacheItem{}, domain.ErrInvalidInput
	}
	item, err := s.cache.Get(ctx, key, s.nowFn())
	if err != nil {
		s.logger.WarnContext(ctx, "cache get degraded to miss", "key", key, "error", err)
		s.recordLookup(ctx, false)
		return domain.CacheItem{Key: key}, nil
	}
	s.recordLookup(ctx, item.Found)
	return item, nil
}

// recordLookup counts the outcome the caller observes, so a degraded read
// counts as a miss.
func (s *Service) recordLookup(ctx context.Context, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		_ = s.metrics.RecordHit(ctx)
	} else {
		_ = s.metrics.RecordMiss(ctx)
	}
}

func (s *Service) PutCached(ctx context.Context, actor Actor, key string, value json.RawMessage, opType string) (domain.CacheItem, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.CacheItem{}, domain.ErrUnauthorized
	}
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 512 || len(value) == 0 {
		return domain.CacheItem{}, domain.ErrInvalidInput
	}

	op := domain.OperationType(strings.TrimSpace(opType))
	now := s.nowFn()
	if err := s.cache.Set(ctx, key, value, op, now); err != nil {
		// A write the backend dropped is equivalent to an entry that expired
		// immediately; the next read will recompute.
		s.logger.WarnContext(ctx, "cache set degraded to no-op", "key", key, "error", err)
	}
	return domain.CacheItem{
		Key:        key,
		Value:      append([]byte(nil), value...),
		Found:      true,
		TTLSeconds: int(domain.ResolveTTL(op).Seconds()),
	}, nil
}

func (s *Service) DeleteCached(ctx context.Context, actor Actor, key string) error {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.ErrUnauthorized
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrInvalidInput
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "cache delete degraded to no-op", "key", key, "error", err)
	} else if s.metrics != nil {
		_ = s.metrics.RecordEviction(ctx, 1)
	}
	return nil
}

func (s *Service) HasCached(ctx context.Context, actor Actor, key string) (bool, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return false, domain.ErrUnauthorized
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false, domain.ErrInvalidInput
	}
	ok, err := s.cache.Has(ctx, key, s.nowFn())
	if err != nil {
		s.logger.WarnContext(ctx, "cache has degraded to miss", "key", key, "error", err)
		return false, nil
	}
	return ok, nil
}

func (s *Service) ClearCache(ctx context.Context, actor Actor) error {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.ErrUnauthorized
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "cache clear degraded to no-op", "error", err)
	}
	return nil
}

func (s *Service) CacheKeys(ctx context.Context, actor Actor) ([]string, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return nil, domain.ErrUnauthorized
	}
	keys, err := s.cache.Keys(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "cache keys degraded to empty", "error", err)
		return []string{}, nil
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// CacheMetrics reports the hit/miss/eviction counters collected since startup.
// Without a recorder wired, or when the snapshot fails, it returns zero values.
func (s *Service) CacheMetrics(ctx context.Context, actor Actor) (domain.CacheMetrics, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.CacheMetrics{}, domain.ErrUnauthorized
	}
	if s.metrics == nil {
		return domain.CacheMetrics{}, nil
	}
	m, err := s.metrics.Snapshot(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "cache metrics degraded to zero values", "error", err)
		return domain.CacheMetrics{}, nil
	}
	return m, nil
}

// RecordHTTPMetric is the router middleware's sink for request telemetry.
func (s *Service) RecordHTTPMetric(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	s.logger.DebugContext(ctx, "http request served",
		"method", method, "path", path, "status", status, "elapsed_ms", elapsed.Milliseconds())
}

// RecordCommand is fire-and-forget: a dropped analytics event is acceptable,
// so backend failures are logged and swallowed. Only input validation is
// reported back to the caller.
func (s *Service) RecordCommand(ctx context.Context, event domain.CommandEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.nowFn()
	}
	if err := s.tracker.TrackCommand(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "command event dropped",
			"command", event.CommandName, "error", err)
	}
	return nil
}

func (s *Service) UsageStats(ctx context.Context, actor Actor) (domain.CommandStats, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.CommandStats{}, domain.ErrUnauthorized
	}
	stats, err := s.tracker.Stats(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "usage stats degraded to zero values", "error", err)
		return domain.ZeroStats(), nil
	}
	return stats, nil
}

func (s *Service) DailyUsage(ctx context.Context, actor Actor, date string) (int64, error) {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return 0, domain.ErrUnauthorized
	}
	day := s.nowFn()
	if strings.TrimSpace(date) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
		if err != nil {
			return 0, domain.ErrInvalidInput
		}
		day = parsed
	}
	count, err := s.tracker.DailyCount(ctx, day)
	if err != nil {
		s.logger.WarnContext(ctx, "daily usage degraded to zero", "date", date, "error", err)
		return 0, nil
	}
	return count, nil
}

func (s *Service) ResetUsage(ctx context.Context, actor Actor) error {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.ErrUnauthorized
	}
	if err := s.tracker.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "usage reset degraded to no-op", "error", err)
	}
	return nil
}

func (s *Service) GetHealth(context.Context) (domain.HealthReport, error) {
	now := s.nowFn()
	return domain.HealthReport{
		Status:        "healthy",
		Timestamp:     now,
		UptimeSeconds: int64(now.Sub(s.startedAt).Seconds()),
		Version:       s.cfg.Version,
		Backend:       s.cfg.BackendName,
		Checks: map[string]domain.ComponentCheck{
			"cache":     {Name: "cache", Status: "healthy", LastChecked: now},
			"analytics": {Name: "analytics", Status: "healthy", LastChecked: now},
		},
	}, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

const (
	keyCommandTotal   = domain.AnalyticsKeyPrefix + "commands:total"
	keyCommandSuccess = domain.AnalyticsKeyPrefix + "commands:success"
	keyCommandFailed  = domain.AnalyticsKeyPrefix + "commands:failed"
	keyCommandDaily   = domain.AnalyticsKeyPrefix + "commands:daily:"
	keyCommandName    = domain.AnalyticsKeyPrefix + "commands:name:"
	keyUniqueUsers    = domain.AnalyticsKeyPrefix + "users:unique"
	keyRecentErrors   = domain.AnalyticsKeyPrefix + "errors:recent"
	keyCommandErrors  = domain.AnalyticsKeyPrefix + "errors:command:"

	dailyRetention   = 30 * 24 * time.Hour
	errorListCap     = 100
	recentErrorSlice = 10
)

// RedisUsageTracker aggregates command usage with atomic Redis counters, a
// HyperLogLog for unique users, and a capped list of recent failures.
//
// TrackCommand issues all mutations as one pipelined round trip, not a
// transaction: counters may transiently disagree across keys, which is
// accepted for throughput over strict cross-key consistency.
type RedisUsageTracker struct {
	client *redis.Client
}

func NewRedisUsageTracker(client *redis.Client) *RedisUsageTracker {
	return &RedisUsageTracker{client: client}
}

type errorRecord struct {
	Command   string    `json:"command"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func (t *RedisUsageTracker) TrackCommand(ctx context.Context, event domain.CommandEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	dailyKey := keyCommandDaily + domain.DayBucket(event.Timestamp)

	pipe := t.client.Pipeline()
	pipe.Incr(ctx, keyCommandTotal)
	pipe.Incr(ctx, dailyKey)
	pipe.Expire(ctx, dailyKey, dailyRetention)
	pipe.Incr(ctx, keyCommandName+event.CommandName)
	pipe.PFAdd(ctx, keyUniqueUsers, event.UserID)
	if event.Success {
		pipe.Incr(ctx, keyCommandSuccess)
	} else {
		pipe.Incr(ctx, keyCommandFailed)
		if event.ErrorKind != "" {
			raw, err := json.Marshal(errorRecord{
				Command:   event.CommandName,
				Error:     event.ErrorKind,
				Timestamp: event.Timestamp.UTC(),
			})
			if err == nil {
				pipe.LPush(ctx, keyRecentErrors, raw)
				pipe.LTrim(ctx, keyRecentErrors, 0, errorListCap-1)
			}
			pipe.Incr(ctx, keyCommandErrors+event.CommandName)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (t *RedisUsageTracker) Stats(ctx context.Context) (domain.CommandStats, error) {
	pipe := t.client.Pipeline()
	totalCmd := pipe.Get(ctx, keyCommandTotal)
	successCmd := pipe.Get(ctx, keyCommandSuccess)
	uniqueCmd := pipe.PFCount(ctx, keyUniqueUsers)
	namesCmd := pipe.Keys(ctx, keyCommandName+"*")
	errorsCmd := pipe.LRange(ctx, keyRecentErrors, 0, recentErrorSlice-1)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.CommandStats{}, err
	}

	stats := domain.ZeroStats()
	stats.TotalCommands = counterValue(totalCmd)
	stats.UniqueUsers, _ = uniqueCmd.Result()
	if stats.TotalCommands > 0 {
		stats.SuccessRate = float64(counterValue(successCmd)) / float64(stats.TotalCommands) * 100
	}

	// One bulk MGET for every per-command counter discovered above. Fetching
	// them one by one would cost a round trip per distinct command name.
	names, _ := namesCmd.Result()
	if len(names) > 0 {
		values, err := t.client.MGet(ctx, names...).Result()
		if err != nil {
			return domain.CommandStats{}, err
		}
		for i, key := range names {
			count, ok := parseCounter(values[i])
			if !ok {
				continue
			}
			stats.CommandBreakdown[strings.TrimPrefix(key, keyCommandName)] = count
		}
	}

	rawErrors, _ := errorsCmd.Result()
	for _, raw := range rawErrors {
		stats.RecentErrors = append(stats.RecentErrors, formatErrorEntry(raw))
	}
	return stats, nil
}

// formatErrorEntry renders one stored failure for display. Entries written by
// other tooling may not be JSON; those surface as raw text instead of failing
// the whole read.
func formatErrorEntry(raw string) string {
	var rec errorRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return raw
	}
	return fmt.Sprintf("%s: %s (%s)", rec.Command, rec.Error, rec.Timestamp.Format(time.RFC3339))
}

func (t *RedisUsageTracker) DailyCount(ctx context.Context, day time.Time) (int64, error) {
	raw, err := t.client.Get(ctx, keyCommandDaily+domain.DayBucket(day)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count, parseErr := strconv.ParseInt(raw, 10, 64)
	if parseErr != nil {
		return 0, nil
	}
	return count, nil
}

// Clear removes only this subsystem's analytics keys from the shared backend.
func (t *RedisUsageTracker) Clear(ctx context.Context) error {
	return deleteByPattern(ctx, t.client, domain.AnalyticsKeyPrefix+"*")
}

func counterValue(cmd *redis.StringCmd) int64 {
	raw, err := cmd.Result()
	if err != nil {
		return 0
	}
	count, parseErr := strconv.ParseInt(raw, 10, 64)
	if parseErr != nil {
		return 0
	}
	return count
}

func parseCounter(value any) (int64, bool) {
	raw, ok := value.(string)
	if !ok {
		return 0, false
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

package domain

import (
	"strings"
	"time"
)

// CommandEvent records one bot command execution. Immutable once created;
// ownership passes to the usage tracker on RecordCommand.
type CommandEvent struct {
	CommandName string    `json:"command_name"`
	UserID      string    `json:"user_id"`
	GuildID     string    `json:"guild_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Success     bool      `json:"success"`
	ErrorKind   string    `json:"error_kind,omitempty"`
}

func (e CommandEvent) Validate() error {
	if strings.TrimSpace(e.CommandName) == "" || strings.TrimSpace(e.UserID) == "" {
		return ErrInvalidInput
	}
	return nil
}

// CommandStats is derived on demand and never stored as its own entity.
// UniqueUsers is exact on the local backend and approximate (HyperLogLog)
// on the Redis backend.
type CommandStats struct {
	TotalCommands    int64            `json:"total_commands"`
	CommandBreakdown map[string]int64 `json:"command_breakdown"`
	UniqueUsers      int64            `json:"unique_users"`
	SuccessRate      float64          `json:"success_rate"`
	RecentErrors     []string         `json:"recent_errors"`
}

// ZeroStats is the well-defined result returned when stats retrieval fails.
func ZeroStats() CommandStats {
	return CommandStats{CommandBreakdown: map[string]int64{}, RecentErrors: []string{}}
}

// DayBucket formats the UTC day bucket used for daily counters.
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DayBounds returns the inclusive start and exclusive end of the UTC day
// containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

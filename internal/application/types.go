package application

import (
	"log/slog"
	"time"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/ports"
)

type Config struct {
	ServiceName string
	Version     string
	// BackendName labels the storage backend selected at bootstrap
	// ("redis" or "memory"); surfaced by health reporting only.
	BackendName string
}

type Actor struct {
	SubjectID string
	Role      string
	RequestID string
}

// Service fronts the cache and usage-analytics backends for the command
// layer. It owns the degrade policy: a failed backend round trip is logged
// and reported as a miss, a no-op, or a zero-value aggregate, never as an
// error to the caller.
type Service struct {
	cfg Config

	logger  *slog.Logger
	cache   ports.CommandCache
	tracker ports.UsageTracker
	metrics ports.CacheMetricsRecorder

	startedAt time.Time
	nowFn     func() time.Time
}

type Dependencies struct {
	Config Config

	Logger  *slog.Logger
	Cache   ports.CommandCache
	Tracker ports.UsageTracker
	// Metrics is optional; a nil recorder disables hit/miss counting.
	Metrics ports.CacheMetricsRecorder
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "XIVDyeTools-State-Service"
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}
	if cfg.BackendName == "" {
		cfg.BackendName = "memory"
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := time.Now().UTC()
	return &Service{
		cfg:       cfg,
		logger:    logger,
		cache:     deps.Cache,
		tracker:   deps.Tracker,
		metrics:   deps.Metrics,
		startedAt: now,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

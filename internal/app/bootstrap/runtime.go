package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	cacheadapter "github.com/FlashGalatine/xivdyetools-state-service/internal/adapters/cache"
	eventadapter "github.com/FlashGalatine/xivdyetools-state-service/internal/adapters/events"
	grpcadapter "github.com/FlashGalatine/xivdyetools-state-service/internal/adapters/grpc"
	httpadapter "github.com/FlashGalatine/xivdyetools-state-service/internal/adapters/http"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/adapters/memory"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/application"
	"github.com/FlashGalatine/xivdyetools-state-service/internal/ports"
)

type Runtime struct {
	cfg         Config
	logger      *slog.Logger
	httpServer  *http.Server
	grpcServer  *grpc.Server
	worker      *eventadapter.Worker
	consumer    ports.EventConsumer
	redisClient *redis.Client
}

// NewRuntime wires the whole service. The storage backend is selected here,
// once, and the same instances live for the process lifetime; there is no
// reconnect-per-call anywhere below this point.
func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var (
		commandCache ports.CommandCache
		tracker      ports.UsageTracker
		redisClient  *redis.Client
		backendName  = "memory"
	)
	if cfg.RedisURL != "" {
		redisClient, err = cacheadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		commandCache = cacheadapter.NewRedisCommandCache(redisClient)
		tracker = cacheadapter.NewRedisUsageTracker(redisClient)
		backendName = "redis"
	} else {
		commandCache = memory.NewCommandCache(cfg.CacheCapacity)
		tracker = memory.NewUsageTracker(cfg.EventLogCapacity)
	}
	logger.InfoContext(ctx, "storage backend selected", "backend", backendName)

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName: cfg.ServiceID,
			BackendName: backendName,
		},
		Logger:  logger,
		Cache:   commandCache,
		Tracker: tracker,
		Metrics: memory.NewCacheMetricsRecorder(),
	})

	handler := httpadapter.NewHandler(service)
	router := httpadapter.NewRouter(handler, service)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	grpcadapter.Register(grpcServer, grpcadapter.NewStateInternalServer(service))

	var consumer ports.EventConsumer
	if len(cfg.KafkaBrokers) > 0 {
		consumer, err = eventadapter.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{cfg.KafkaTopic})
		if err != nil {
			return nil, fmt.Errorf("kafka consumer: %w", err)
		}
	} else {
		consumer = eventadapter.NewMemoryConsumer()
	}
	worker := eventadapter.NewWorker(logger, consumer, service, cfg.ConsumerPollInterval)

	return &Runtime{
		cfg:         cfg,
		logger:      logger,
		httpServer:  httpServer,
		grpcServer:  grpcServer,
		worker:      worker,
		consumer:    consumer,
		redisClient: redisClient,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ports are bound here, not in NewRuntime, so the worker process never
	// holds listeners it does not serve.
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", r.cfg.GRPCPort))
	if err != nil {
		r.closeBackends()
		return err
	}
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.closeBackends()
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.closeBackends()
	errCh := make(chan error, 1)
	go func() {
		if err := r.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (r *Runtime) closeBackends() {
	if r.consumer != nil {
		_ = r.consumer.Close()
	}
	if r.redisClient != nil {
		_ = r.redisClient.Close()
	}
}

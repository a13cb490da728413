package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.GRPCPort != 9090 {
		t.Fatalf("unexpected default ports: %d %d", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.RedisURL != "" {
		t.Fatalf("expected empty redis url by default, got %q", cfg.RedisURL)
	}
	if cfg.CacheCapacity != 500 || cfg.EventLogCapacity != 1000 {
		t.Fatalf("unexpected default capacities: %d %d", cfg.CacheCapacity, cfg.EventLogCapacity)
	}
	if cfg.KafkaTopic != "bot.command.executed" || cfg.KafkaGroupID != "state-service" {
		t.Fatalf("unexpected kafka defaults: %q %q", cfg.KafkaTopic, cfg.KafkaGroupID)
	}
	if cfg.ConsumerPollInterval != 2*time.Second {
		t.Fatalf("unexpected poll interval: %v", cfg.ConsumerPollInterval)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
service:
  id: state-test
  http_port: 8181
  grpc_port: 9191
backend:
  redis_url: redis://localhost:6379/2
  cache_capacity: 64
  event_log_capacity: 128
events:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
  group_id: state-test
  topic: test.commands
  poll_seconds: 5
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceID != "state-test" || cfg.HTTPPort != 8181 || cfg.GRPCPort != 9191 {
		t.Fatalf("unexpected service config: %+v", cfg)
	}
	if cfg.RedisURL != "redis://localhost:6379/2" {
		t.Fatalf("unexpected redis url: %q", cfg.RedisURL)
	}
	if cfg.CacheCapacity != 64 || cfg.EventLogCapacity != 128 {
		t.Fatalf("unexpected capacities: %d %d", cfg.CacheCapacity, cfg.EventLogCapacity)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.KafkaTopic != "test.commands" || cfg.ConsumerPollInterval != 5*time.Second {
		t.Fatalf("unexpected events config: %q %v", cfg.KafkaTopic, cfg.ConsumerPollInterval)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
backend:
  redis_url: redis://from-file:6379
  cache_capacity: 64
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("REDIS_URL", "redis://from-env:6379")
	t.Setenv("CACHE_CAPACITY", "32")
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092")
	t.Setenv("CONSUMER_POLL_SECONDS", "7")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RedisURL != "redis://from-env:6379" {
		t.Fatalf("expected env redis url to win, got %q", cfg.RedisURL)
	}
	if cfg.CacheCapacity != 32 {
		t.Fatalf("expected env capacity to win, got %d", cfg.CacheCapacity)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-b:9092" {
		t.Fatalf("unexpected brokers from env: %v", cfg.KafkaBrokers)
	}
	if cfg.ConsumerPollInterval != 7*time.Second {
		t.Fatalf("unexpected poll interval from env: %v", cfg.ConsumerPollInterval)
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service: [not a map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error for malformed yaml")
	}
}

func TestLoadConfigIgnoresBadEnvInt(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected fallback port on bad env value, got %d", cfg.HTTPPort)
	}
}

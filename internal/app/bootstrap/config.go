package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	// RedisURL selects the storage backend once at startup: empty means the
	// bounded in-process backend, anything else the shared Redis instance.
	RedisURL string

	CacheCapacity    int
	EventLogCapacity int

	KafkaBrokers         []string
	KafkaGroupID         string
	KafkaTopic           string
	ConsumerPollInterval time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Backend struct {
		RedisURL         string `yaml:"redis_url"`
		CacheCapacity    int    `yaml:"cache_capacity"`
		EventLogCapacity int    `yaml:"event_log_capacity"`
	} `yaml:"backend"`
	Events struct {
		Brokers     []string `yaml:"brokers"`
		GroupID     string   `yaml:"group_id"`
		Topic       string   `yaml:"topic"`
		PollSeconds int      `yaml:"poll_seconds"`
	} `yaml:"events"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:            "XIVDyeTools-State-Service",
		HTTPPort:             8080,
		GRPCPort:             9090,
		CacheCapacity:        500,
		EventLogCapacity:     1000,
		KafkaGroupID:         "state-service",
		KafkaTopic:           "bot.command.executed",
		ConsumerPollInterval: 2 * time.Second,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		cfg.RedisURL = f.Backend.RedisURL
		if f.Backend.CacheCapacity > 0 {
			cfg.CacheCapacity = f.Backend.CacheCapacity
		}
		if f.Backend.EventLogCapacity > 0 {
			cfg.EventLogCapacity = f.Backend.EventLogCapacity
		}
		if len(f.Events.Brokers) > 0 {
			cfg.KafkaBrokers = f.Events.Brokers
		}
		if f.Events.GroupID != "" {
			cfg.KafkaGroupID = f.Events.GroupID
		}
		if f.Events.Topic != "" {
			cfg.KafkaTopic = f.Events.Topic
		}
		if f.Events.PollSeconds > 0 {
			cfg.ConsumerPollInterval = time.Duration(f.Events.PollSeconds) * time.Second
		}
	}

	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.CacheCapacity = envInt("CACHE_CAPACITY", cfg.CacheCapacity)
	cfg.EventLogCapacity = envInt("EVENT_LOG_CAPACITY", cfg.EventLogCapacity)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitBrokers(brokers)
	}
	cfg.KafkaGroupID = envOrDefault("KAFKA_GROUP_ID", cfg.KafkaGroupID)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.ConsumerPollInterval = time.Duration(envInt("CONSUMER_POLL_SECONDS", int(cfg.ConsumerPollInterval.Seconds()))) * time.Second

	return cfg, nil
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

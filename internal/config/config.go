package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	SourceURL    string
	SnapshotPath string
	FetchTimeout time.Duration

	// WatchInterval > 0 switches the binary from one-shot to service mode,
	// re-running the pipeline on the interval and serving HTTP endpoints.
	WatchInterval time.Duration
	HTTPAddr      string

	LogLevel  string
	LogFormat string

	// Kafka publishing of new strong events, enabled when a topic is set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	watchInterval, err := parseDuration("WATCH_INTERVAL", "0s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SourceURL:     os.Getenv("SOURCE_URL"),
		SnapshotPath:  envOrDefault("SNAPSHOT_PATH", "quake_snapshot.json"),
		FetchTimeout:  fetchTimeout,
		WatchInterval: watchInterval,
		HTTPAddr:      envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("LOG_FORMAT", "json"),
		KafkaBrokers:  parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
	}

	cfg.KafkaEnabled = cfg.KafkaTopic != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		cfg.KafkaEnabled = v == "true"
	}

	if cfg.SourceURL == "" {
		return nil, errors.New("SOURCE_URL is required")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SNAPSHOT_PATH is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

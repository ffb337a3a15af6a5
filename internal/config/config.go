package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// FeedFile optionally bootstraps the snapshot from a local USGS-format
	// feed file at startup.
	FeedFile string

	// QueryMinStart is the earliest start date the query API accepts.
	QueryMinStart domain.EventTime

	// Kafka ingestion configuration. Ingestion is feature-flagged: with
	// KAFKA_ENABLED unset the service serves queries over the file
	// bootstrap only.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	KafkaSinkEnabled bool

	BatchSize          int
	BatchFlushInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	flushInterval, err := parsePositiveDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	minStart, err := domain.ParseEventTime(envOrDefault("QUERY_MIN_START_DATE", "2010-01-01T00:00:00.000Z"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUERY_MIN_START_DATE: %w", err)
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedFile:      os.Getenv("FEED_FILE"),
		QueryMinStart: minStart,

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "raw-quake-feed"),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "canonical-quakes"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "quake-analysis"),
		KafkaSinkEnabled: os.Getenv("KAFKA_SINK_ENABLED") == "true",

		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SOURCE_TOPIC is empty")
		}
	}
	if cfg.KafkaSinkEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_ENABLED is true but KAFKA_SINK_TOPIC is empty")
	}
	if !cfg.KafkaEnabled && cfg.FeedFile == "" {
		return nil, errors.New("no data source configured: set FEED_FILE or KAFKA_ENABLED")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: want a positive duration", key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	n, err := strconv.Atoi(envOrDefault("BATCH_SIZE", "50"))
	if err != nil || n < 1 || n > 1000 {
		return 0, errors.New("invalid BATCH_SIZE: want an integer in [1, 1000]")
	}
	return n, nil
}

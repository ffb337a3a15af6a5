package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/quake-analysis-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-analysis-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-analysis-service/internal/config"
	"github.com/couchcryptid/quake-analysis-service/internal/feed"
	"github.com/couchcryptid/quake-analysis-service/internal/observability"
	"github.com/couchcryptid/quake-analysis-service/internal/pipeline"
	"github.com/couchcryptid/quake-analysis-service/internal/query"
	"github.com/couchcryptid/quake-analysis-service/internal/store"
)

// storeReadiness reports ready once the snapshot store has published a batch.
// Used when Kafka ingestion is disabled and the file bootstrap is the only
// data source.
type storeReadiness struct {
	snapshots *store.Store
}

func (r storeReadiness) CheckReadiness(_ context.Context) error {
	if !r.snapshots.Ready() {
		return errors.New("no feed snapshot loaded yet")
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	snapshots := store.New(clockwork.NewRealClock())

	// Bootstrap the snapshot from a local feed file when configured.
	if cfg.FeedFile != "" {
		if err := loadFeedFile(cfg.FeedFile, snapshots, metrics, logger); err != nil {
			logger.Error("feed file bootstrap failed", "error", err, "path", cfg.FeedFile)
			os.Exit(1)
		}
	}

	var ready httpadapter.ReadinessChecker = storeReadiness{snapshots: snapshots}

	// Kafka ingestion is feature-flagged via KAFKA_ENABLED; the sink topic
	// additionally via KAFKA_SINK_ENABLED.
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer
	var p *pipeline.Pipeline
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)

		var publisher pipeline.Publisher
		if cfg.KafkaSinkEnabled {
			writer = kafkaadapter.NewWriter(cfg, logger)
			publisher = writer
			logger.Info("canonical sink enabled", "topic", cfg.KafkaSinkTopic)
		}

		p = pipeline.New(reader, snapshots, publisher, logger, metrics, cfg.BatchSize)
		ready = p
		logger.Info("kafka ingestion enabled",
			"brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSourceTopic, "group", cfg.KafkaGroupID)
	} else {
		logger.Info("kafka ingestion disabled")
	}

	srv := httpadapter.NewServer(cfg, snapshots, ready, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ingest pipeline.
	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadFeedFile parses a USGS-format feed file and publishes the earthquake
// subset as the initial snapshot.
func loadFeedFile(path string, snapshots *store.Store, metrics *observability.Metrics, logger *slog.Logger) error {
	lines, err := feed.ReadLines(path)
	if err != nil {
		return err
	}

	results := feed.ParseFeed(lines)
	parseErrs := feed.Errors(results)
	for _, perr := range parseErrs {
		logger.Warn("parse failed, skipping record", "error", perr)
	}

	events, err := query.FilterEarthquakes(results)
	if err != nil {
		return err
	}

	snap := snapshots.Replace(events, len(parseErrs))
	metrics.RecordsParsed.Add(float64(len(results) - len(parseErrs)))
	metrics.ParseErrors.Add(float64(len(parseErrs)))
	metrics.SnapshotEvents.Set(float64(len(snap.Events)))

	logger.Info("feed file loaded",
		"path", path,
		"records", len(lines),
		"earthquakes", len(snap.Events),
		"parse_errors", len(parseErrs),
	)
	return nil
}

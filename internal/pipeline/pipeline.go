// Package pipeline runs the batch ingest loop: extract raw feed records,
// parse them into seismic events, publish the earthquake subset into the
// query snapshot, and optionally republish canonical events to a sink topic.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
	"github.com/couchcryptid/quake-analysis-service/internal/observability"
	"github.com/couchcryptid/quake-analysis-service/internal/store"
)

// RawRecord is one unparsed feed line as delivered by a source adapter.
type RawRecord struct {
	Key       []byte
	Line      string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// BatchExtractor reads up to batchSize raw records from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]RawRecord, error)
}

// Publisher republishes parsed canonical events, e.g. to a Kafka sink topic.
type Publisher interface {
	PublishBatch(ctx context.Context, events []domain.SeismicEvent) error
}

// Pipeline orchestrates the extract-parse-publish loop.
type Pipeline struct {
	extractor BatchExtractor
	snapshots *store.Store
	publisher Publisher // nil when the sink is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	batchSize int
}

// New creates a Pipeline. Pass a nil publisher to disable the canonical sink.
func New(e BatchExtractor, snapshots *store.Store, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor: e,
		snapshots: snapshots,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// CheckReadiness returns nil once at least one snapshot has been published,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.snapshots.Ready() {
		return errors.New("no feed snapshot published yet")
	}
	return nil
}

// Run executes the batch ingest loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("ingest pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during source outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("ingest pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-parse-publish cycle. Returns false if the
// pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	ok := p.parseAndPublish(ctx, rawBatch, backoff, maxBackoff)
	if !ok {
		return false
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	return true
}

// parseAndPublish parses each record in the batch, appends the earthquake
// subset to the snapshot, republishes parsed events when a sink is
// configured, and commits offsets. Malformed records are skipped and
// committed so they are never redelivered. Returns false if the pipeline
// should stop.
func (p *Pipeline) parseAndPublish(ctx context.Context, rawBatch []RawRecord, backoff *time.Duration, maxBackoff time.Duration) bool {
	parsed := make([]domain.SeismicEvent, 0, len(rawBatch))
	quakes := make([]domain.SeismicEvent, 0, len(rawBatch))
	successfulRaws := make([]RawRecord, 0, len(rawBatch))
	parseErrors := 0

	for _, raw := range rawBatch {
		event, err := domain.ParseRecord(raw.Line)
		if err != nil {
			p.logger.Warn("parse failed, skipping record",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.ParseErrors.Inc()
			parseErrors++
			p.commitOffset(ctx, raw)
			continue
		}
		parsed = append(parsed, event)
		successfulRaws = append(successfulRaws, raw)
		if event.IsEarthquake() {
			quakes = append(quakes, event)
		}
	}

	if p.publisher != nil && len(parsed) > 0 {
		if err := p.publisher.PublishBatch(ctx, parsed); err != nil {
			p.logger.Error("publish batch failed", "error", err, "batch_size", len(parsed))
			return p.backoffOrStop(ctx, backoff, maxBackoff)
		}
	}

	snap := p.snapshots.Append(quakes, parseErrors)
	p.metrics.RecordsParsed.Add(float64(len(parsed)))
	p.metrics.SnapshotEvents.Set(float64(len(snap.Events)))

	for _, raw := range successfulRaws {
		p.commitOffset(ctx, raw)
	}

	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the record offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw RawRecord) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Package pipeline drives the per-station QC batch: discover raw files,
// transform each sounding, and persist the results. Stations are
// independent and fan out across a bounded worker pool; records within one
// sounding stay strictly sequential because timestamp reconstruction
// threads state from record to record.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/sonde-data-etl/internal/domain"
	"github.com/couchcryptid/sonde-data-etl/internal/manifest"
	"github.com/couchcryptid/sonde-data-etl/internal/observability"
)

// Terminal outcomes for one station-file pair; also the label values of the
// soundings_total metric.
const (
	outcomeWritten = "written"
	outcomeNoData  = "no_data"
	outcomeFailed  = "failed"
)

// RawStore locates and reads raw receiver files for a sonde.
type RawStore interface {
	Discover(sondeID string) ([]string, error)
	ReadRaw(path string) ([]domain.RawRecord, error)
}

// ResultWriter persists a completed sounding and returns where it put it.
type ResultWriter interface {
	WriteSounding(stationID string, index int, s domain.Sounding) (string, error)
}

// Publisher streams a completed sounding's records to a sink topic.
type Publisher interface {
	PublishSounding(ctx context.Context, s domain.Sounding) error
}

// Summary totals the terminal outcomes of one batch run. Fields are updated
// atomically by the worker pool.
type Summary struct {
	Written atomic.Int64 // analysis files produced
	NoData  atomic.Int64 // station-file pairs that collapsed to no data
	Failed  atomic.Int64 // read, transform, or write failures
}

// Batch runs the QC transform for every field book entry.
type Batch struct {
	store     RawStore
	writer    ResultWriter
	publisher Publisher // nil when Kafka publishing is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
	workers   int
	ready     atomic.Bool
}

// New creates a Batch. Pass a nil publisher to disable Kafka output.
func New(store RawStore, writer ResultWriter, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, workers int) *Batch {
	return &Batch{
		store:     store,
		writer:    writer,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		workers:   workers,
	}
}

// CheckReadiness returns nil once at least one sounding has been written.
func (b *Batch) CheckReadiness(_ context.Context) error {
	if !b.ready.Load() {
		return errors.New("batch has not completed any sounding yet")
	}
	return nil
}

// Run processes every station in the field book, limited to the configured
// number of concurrent workers. Per-station problems are logged and counted
// but never abort the batch; Run only returns an error when the context is
// cancelled mid-run.
func (b *Batch) Run(ctx context.Context, entries []manifest.Entry) (*Summary, error) {
	b.logger.Info("batch started", "stations", len(entries), "workers", b.workers)
	b.metrics.BatchRunning.Set(1)
	defer b.metrics.BatchRunning.Set(0)

	summary := &Summary{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b.processStation(gctx, entry, summary)
			return nil
		})
	}

	err := g.Wait()
	b.logger.Info("batch finished",
		"written", summary.Written.Load(),
		"no_data", summary.NoData.Load(),
		"failed", summary.Failed.Load(),
	)
	return summary, err
}

// processStation handles one field book entry: zero or more raw files, each
// transformed and written independently.
func (b *Batch) processStation(ctx context.Context, entry manifest.Entry, summary *Summary) {
	logger := b.logger.With("station", entry.StationID, "sonde", entry.SondeID)

	paths, err := b.store.Discover(entry.SondeID)
	if err != nil {
		logger.Error("discover raw files failed", "error", err)
		b.count(summary, outcomeFailed)
		return
	}
	if len(paths) == 0 {
		logger.Info("no raw file found, station skipped")
		b.count(summary, outcomeNoData)
		return
	}
	if len(paths) > 1 {
		logger.Warn("multiple raw files found, processing each", "count", len(paths))
	}

	for i, path := range paths {
		index := 0
		if len(paths) > 1 {
			index = i + 1
		}
		b.processFile(ctx, entry, path, index, summary, logger)
	}
}

func (b *Batch) processFile(ctx context.Context, entry manifest.Entry, path string, index int, summary *Summary, logger *slog.Logger) {
	start := time.Now()
	logger = logger.With("raw_file", path)

	raws, err := b.store.ReadRaw(path)
	if err != nil {
		logger.Error("read raw file failed", "error", err)
		b.count(summary, outcomeFailed)
		return
	}
	b.metrics.RecordsRead.Add(float64(len(raws)))

	sounding, err := domain.BuildSounding(entry.StationID, entry.SondeID, entry.LaunchTime, raws)
	switch {
	case errors.Is(err, domain.ErrNoData):
		logger.Info("sounding collapsed to no data")
		b.count(summary, outcomeNoData)
		return
	case err != nil:
		logger.Error("transform failed", "error", err)
		b.count(summary, outcomeFailed)
		return
	}

	b.metrics.RecordsKept.Add(float64(len(sounding.Records)))
	for _, rec := range sounding.Records {
		if rec.Dewpoint == nil {
			b.metrics.DewpointMissing.Inc()
		}
	}

	outPath, err := b.writer.WriteSounding(entry.StationID, index, sounding)
	if err != nil {
		logger.Error("write analysis file failed", "error", err)
		b.count(summary, outcomeFailed)
		return
	}

	if b.publisher != nil {
		if err := b.publisher.PublishSounding(ctx, sounding); err != nil {
			// File output already succeeded; the stream is best-effort.
			logger.Warn("publish sounding failed", "error", err)
		} else {
			b.metrics.RecordsPublished.Add(float64(len(sounding.Records)))
		}
	}

	b.count(summary, outcomeWritten)
	b.metrics.TransformDuration.Observe(time.Since(start).Seconds())
	b.ready.Store(true)
	logger.Info("sounding written", "out_file", outPath, "records", len(sounding.Records))
}

func (b *Batch) count(summary *Summary, outcome string) {
	b.metrics.Soundings.WithLabelValues(outcome).Inc()
	switch outcome {
	case outcomeWritten:
		summary.Written.Add(1)
	case outcomeNoData:
		summary.NoData.Add(1)
	case outcomeFailed:
		summary.Failed.Add(1)
	}
}

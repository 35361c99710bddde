// Package pipeline orchestrates one synchronous pass over the source table:
// fetch, detect schema, parse, aggregate against the prior snapshot, select
// strong quakes, render, publish, and replace the snapshot.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/quakewatch/quake-report-etl/internal/domain"
	"github.com/quakewatch/quake-report-etl/internal/observability"
)

// TableSource supplies the raw table extracted from the source page.
type TableSource interface {
	FetchTable(ctx context.Context) (*domain.RawTable, error)
}

// SnapshotStore persists the signature set between runs.
type SnapshotStore interface {
	Load() (map[string]struct{}, error)
	Save(signatures []string) error
}

// Renderer consumes the finished report.
type Renderer interface {
	Render(report *domain.Report) error
}

// Publisher emits newly observed strong quakes to an external sink.
type Publisher interface {
	PublishNew(ctx context.Context, quakes []domain.QuakeRecord) error
}

// Pipeline wires the stages together. The core computation is
// single-threaded; all blocking I/O happens at the boundaries before and
// after it.
type Pipeline struct {
	source     TableSource
	store      SnapshotStore
	renderer   Renderer
	publisher  Publisher // nil disables publishing
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool
	lastReport atomic.Pointer[domain.Report]
}

// New creates a Pipeline. Pass a nil publisher to disable event publishing.
func New(source TableSource, store SnapshotStore, renderer Renderer, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    source,
		store:     store,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one pass has completed
// successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a pass yet")
	}
	return nil
}

// LastReport returns the report of the most recent successful pass, nil
// before the first one.
func (p *Pipeline) LastReport() *domain.Report {
	return p.lastReport.Load()
}

// Run executes one complete pass. Only the fatal conditions — an unreadable
// source, a missing table, or an unresolvable magnitude column — surface as
// errors; per-record anomalies degrade gracefully and are logged.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	err := p.runOnce(ctx)
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.Runs.WithLabelValues("error").Inc()
		return err
	}
	p.metrics.Runs.WithLabelValues("success").Inc()
	p.ready.Store(true)
	return nil
}

func (p *Pipeline) runOnce(ctx context.Context) error {
	table, err := p.source.FetchTable(ctx)
	if err != nil {
		return fmt.Errorf("fetch table: %w", err)
	}
	p.metrics.RowsExtracted.Add(float64(len(table.Rows)))

	schema, err := domain.DetectSchema(table)
	if err != nil {
		return fmt.Errorf("detect schema: %w", err)
	}
	p.logger.Debug("schema detected",
		"magnitude_col", schema.MagnitudeCol,
		"location_col", schema.LocationCol,
		"date_col", schema.DateCol,
	)

	records := domain.ParseRows(table, schema)
	p.metrics.RecordsParsed.Add(float64(len(records)))
	for _, rec := range records {
		if rec.Magnitude == nil {
			p.metrics.MagnitudeParseErrors.Inc()
			p.logger.Warn("magnitude unparseable, record excluded from counts",
				"datetime", rec.DateTime, "location", rec.Location)
		}
	}

	prior, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	report := domain.BuildReport(records, prior)
	p.observeReport(report)

	if err := p.renderer.Render(report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if err := p.publishNew(ctx, records, prior); err != nil {
		// Publishing is best-effort: the report already rendered and the
		// snapshot must still advance, otherwise events replay forever.
		p.logger.Error("publish new events failed", "error", err)
	}

	if err := p.store.Save(domain.Signatures(records)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	p.lastReport.Store(report)
	return nil
}

// publishNew sends records that are both strong and unseen in the prior
// snapshot. No-op without a publisher.
func (p *Pipeline) publishNew(ctx context.Context, records []domain.QuakeRecord, prior map[string]struct{}) error {
	if p.publisher == nil {
		return nil
	}

	var fresh []domain.QuakeRecord
	for _, rec := range records {
		if _, seen := prior[rec.Signature]; seen || !rec.Strong() {
			continue
		}
		fresh = append(fresh, rec)
	}
	if len(fresh) == 0 {
		return nil
	}

	if err := p.publisher.PublishNew(ctx, fresh); err != nil {
		return err
	}
	p.metrics.EventsPublished.Add(float64(len(fresh)))
	return nil
}

func (p *Pipeline) observeReport(report *domain.Report) {
	newTotal := 0
	for _, c := range report.Counts {
		newTotal += c.NewSinceLast
	}
	p.metrics.NewRecords.Add(float64(newTotal))
	p.metrics.StrongQuakes.Set(float64(len(report.Strong)))

	p.logger.Info("pass complete",
		"rows", report.TotalRows,
		"strong", len(report.Strong),
		"new", newTotal,
	)
}

// Watch re-runs the pipeline on a fixed interval until the context is
// cancelled. Failed passes are logged and counted, not fatal: a transient
// source outage should not take the service down.
func (p *Pipeline) Watch(ctx context.Context, interval time.Duration) error {
	p.logger.Info("watch mode started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := p.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("pass failed", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("watch mode stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}

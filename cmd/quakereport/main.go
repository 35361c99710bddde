// Command quakereport scrapes a seismic bulletin page, classifies events
// into magnitude buckets, diffs them against the previous run's snapshot,
// and prints a bounded report of recent strong quakes.
//
// With WATCH_INTERVAL unset (or 0) it runs a single pass and exits 0 on
// success, 1 on an unrecoverable schema or fetch failure. With a positive
// WATCH_INTERVAL it keeps re-running on that interval and serves health,
// metrics and last-report HTTP endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/quakewatch/quake-report-etl/internal/adapter/htmltable"
	httpadapter "github.com/quakewatch/quake-report-etl/internal/adapter/http"
	kafkaadapter "github.com/quakewatch/quake-report-etl/internal/adapter/kafka"
	"github.com/quakewatch/quake-report-etl/internal/adapter/render"
	"github.com/quakewatch/quake-report-etl/internal/adapter/snapshot"
	"github.com/quakewatch/quake-report-etl/internal/config"
	"github.com/quakewatch/quake-report-etl/internal/observability"
	"github.com/quakewatch/quake-report-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	source := htmltable.NewSource(cfg.SourceURL, cfg.FetchTimeout, logger)
	store := snapshot.NewFileStore(cfg.SnapshotPath, logger)
	console := render.NewConsole(os.Stdout)

	// Publishing of new strong events is feature-flagged via KAFKA_TOPIC.
	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(source, store, console, publisher, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	if cfg.WatchInterval > 0 {
		runWatch(ctx, cfg, p, logger)
	} else if err := p.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		exitCode = 1
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	os.Exit(exitCode)
}

// runWatch runs the interval loop alongside the HTTP endpoints until the
// signal context is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) {
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := p.Watch(ctx, cfg.WatchInterval); err != nil {
		logger.Error("watch error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/sports-dashboard/internal/app"
	"github.com/riskibarqy/sports-dashboard/internal/config"
	"github.com/riskibarqy/sports-dashboard/internal/observability"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

const (
	exitOK          = 0
	exitFatal       = 1
	exitRateLimited = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return exitFatal
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Name: "updater"})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return exitFatal
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return exitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx, span := observability.StartRun(ctx, runID)

	logger.InfoContext(ctx, "refresh starting",
		"snapshot_path", cfg.SnapshotPath,
		"display_timezone", cfg.DisplayTimezone,
		"football_source", application.Sources["football"],
		"basketball_source", application.Sources["basketball"],
		"broadcast_source", application.Sources["broadcast"],
	)
	report, err := application.Snapshot.Run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, report.Outcome)
	}
	span.End()

	if werr := application.Metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
		logger.WarnContext(ctx, "write metrics textfile", "path", cfg.MetricsTextfile, "error", werr)
	}

	logger.InfoContext(ctx, "refresh finished",
		"outcome", report.Outcome,
		"written", report.Written,
		"retained", report.Retained,
		"fixtures", report.SelectedFixtures,
		"took", report.Took,
	)

	switch {
	case errors.Is(err, usecase.ErrRateLimited):
		return exitRateLimited
	case err != nil:
		return exitFatal
	default:
		return exitOK
	}
}

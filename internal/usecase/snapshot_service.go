package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

const (
	OutcomeOK          = "ok"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

// RunReport summarises one refresh for logs and the exit code.
type RunReport struct {
	Outcome          string
	Written          bool
	Retained         bool
	SelectedFixtures int
	Took             time.Duration
}

// SnapshotService runs the whole refresh: load the previous document,
// select, enrich, summarise the other sports, assemble and save. The save
// is the last step, so any abort leaves the previous file in place.
type SnapshotService struct {
	repo       snapshot.Repository
	selection  *SelectionService
	broadcast  *BroadcastService
	basketball *BasketballService
	outlook    *OutlookService
	assembler  *snapshot.Assembler
	converter  *timezone.Converter
	metrics    *metrics.Recorder
	logger     *logging.Logger
}

func NewSnapshotService(
	repo snapshot.Repository,
	selection *SelectionService,
	broadcast *BroadcastService,
	basketball *BasketballService,
	outlook *OutlookService,
	assembler *snapshot.Assembler,
	converter *timezone.Converter,
	recorder *metrics.Recorder,
	logger *logging.Logger,
) *SnapshotService {
	if assembler == nil {
		assembler = snapshot.NewAssembler(snapshot.DefaultLimits(), snapshot.DefaultDefaults())
	}
	if converter == nil {
		converter = timezone.NewConverter(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{
		repo:       repo,
		selection:  selection,
		broadcast:  broadcast,
		basketball: basketball,
		outlook:    outlook,
		assembler:  assembler,
		converter:  converter,
		metrics:    recorder,
		logger:     logger.Named("snapshot"),
	}
}

// Run returns an error wrapping ErrRateLimited when the search quota ran
// out; nothing is written in that case.
func (s *SnapshotService) Run(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Run")
	defer span.End()

	started := time.Now()
	report, err := s.run(ctx)
	report.Took = time.Since(started)

	switch {
	case err == nil:
		report.Outcome = OutcomeOK
	case errors.Is(err, ErrRateLimited):
		report.Outcome = OutcomeRateLimited
		s.logger.WarnContext(ctx, "rate limit reached, keeping previous snapshot", "error", err)
	default:
		report.Outcome = OutcomeFailed
		s.logger.ErrorContext(ctx, "refresh failed", "error", err)
	}
	s.metrics.RunFinished(report.Outcome, report.Took, time.Now())
	return report, err
}

func (s *SnapshotService) run(ctx context.Context) (RunReport, error) {
	var report RunReport

	previous, found, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "previous snapshot unreadable, starting fresh", "error", err)
		previous, found = snapshot.Document{}, false
	}
	s.logger.InfoContext(ctx, "previous snapshot loaded", "found", found, "fixtures", len(previous.Football.SelectedFixtures))

	sel, err := s.selection.Select(ctx, previous.Football)
	if err != nil {
		return report, fmt.Errorf("select fixtures: %w", err)
	}
	if s.broadcast != nil {
		sel.Batch, err = s.broadcast.Enrich(ctx, sel.Batch)
		if err != nil {
			return report, fmt.Errorf("broadcast lookup: %w", err)
		}
	}

	doc := snapshot.Document{Football: s.selection.Football(sel)}
	if s.basketball != nil {
		doc.Basketball, err = s.basketball.Summary(ctx)
		if err != nil {
			return report, fmt.Errorf("basketball summary: %w", err)
		}
	}
	if s.outlook != nil {
		doc.Tennis, doc.Motorsport, err = s.outlook.Outlook(ctx)
		if err != nil {
			return report, fmt.Errorf("outlook: %w", err)
		}
	}
	doc.Updated = s.converter.Stamp()

	assembled := s.assembler.Assemble(doc)
	if err := s.repo.Save(ctx, assembled); err != nil {
		return report, fmt.Errorf("save snapshot: %w", err)
	}

	report.Written = true
	report.Retained = sel.Retained
	report.SelectedFixtures = len(assembled.Football.SelectedFixtures)
	s.logger.InfoContext(ctx, "snapshot written",
		"round", assembled.Football.RoundLabel,
		"fixtures", report.SelectedFixtures,
		"retained", report.Retained,
		"upcoming_basketball", len(assembled.Basketball.Upcoming),
	)
	return report, nil
}

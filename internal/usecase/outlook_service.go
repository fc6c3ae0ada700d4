package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
)

type OutlookConfig struct {
	Competitor string
	Series     string
}

// OutlookService produces the individual-sport and motorsport sections.
type OutlookService struct {
	source  snapshot.OutlookSource
	cfg     OutlookConfig
	now     func() time.Time
	metrics *metrics.Recorder
	logger  *logging.Logger
}

func NewOutlookService(source snapshot.OutlookSource, cfg OutlookConfig, now func() time.Time, recorder *metrics.Recorder, logger *logging.Logger) *OutlookService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OutlookService{source: source, cfg: cfg, now: now, metrics: recorder, logger: logger.Named("outlook")}
}

func (s *OutlookService) Outlook(ctx context.Context) (snapshot.Individual, snapshot.Series, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutlookService.Outlook")
	defer span.End()

	individual := snapshot.Individual{Competitor: s.cfg.Competitor}
	series := snapshot.Series{Series: s.cfg.Series}

	if s.source != nil {
		s.metrics.SourceRequest("outlook")
		gotIndividual, gotSeries, err := s.source.Outlook(ctx, s.cfg.Competitor, s.cfg.Series)
		switch {
		case errors.Is(err, ErrRateLimited):
			return snapshot.Individual{}, snapshot.Series{}, err
		case err != nil:
			s.metrics.SourceFailed("outlook")
			s.logger.WarnContext(ctx, "outlook unavailable, using defaults", "error", err)
		default:
			individual, series = gotIndividual, gotSeries
		}
	}

	if individual.Competitor == "" {
		individual.Competitor = s.cfg.Competitor
	}
	if series.Series == "" {
		series.Series = s.cfg.Series
	}
	if series.Status == "" {
		series.Status = seasonLabel(s.now())
	}
	return individual, series, nil
}

// seasonLabel names the upcoming season once the calendar reaches November.
func seasonLabel(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.November {
		year++
	}
	return "Season " + strconv.Itoa(year)
}

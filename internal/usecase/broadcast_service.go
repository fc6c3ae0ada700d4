package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/sports-dashboard/internal/domain/search"
	"github.com/riskibarqy/sports-dashboard/internal/domain/selection"
	"github.com/riskibarqy/sports-dashboard/internal/platform/factextract"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
)

const broadcastNearRadius = 160

// BroadcastService fills in missing football channels with one search per
// fixture. Unknown channels stay empty.
type BroadcastService struct {
	searcher  search.Searcher
	extractor *factextract.TextFactExtractor
	metrics   *metrics.Recorder
	logger    *logging.Logger
}

func NewBroadcastService(searcher search.Searcher, extractor *factextract.TextFactExtractor, recorder *metrics.Recorder, logger *logging.Logger) *BroadcastService {
	if extractor == nil {
		extractor = factextract.NewTextFactExtractor(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BroadcastService{
		searcher:  searcher,
		extractor: extractor,
		metrics:   recorder,
		logger:    logger.Named("broadcast"),
	}
}

func (s *BroadcastService) Enrich(ctx context.Context, batch selection.Batch) (selection.Batch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BroadcastService.Enrich")
	defer span.End()

	if s.searcher == nil {
		return batch, nil
	}

	out := selection.Batch{Round: batch.Round, Picks: make([]selection.Pick, len(batch.Picks))}
	copy(out.Picks, batch.Picks)

	for i, pick := range out.Picks {
		item := pick.Fixture
		if item.Channel != "" {
			continue
		}

		s.metrics.SourceRequest("broadcast")
		text, err := s.searcher.Search(ctx, broadcastQuery(item.HomeTeam, item.AwayTeam, item.VenueDay))
		if errors.Is(err, ErrRateLimited) {
			return batch, err
		}
		if err != nil {
			s.metrics.SourceFailed("broadcast")
			s.logger.WarnContext(ctx, "broadcast lookup failed", "fixture", item.SourceID, "error", err)
			continue
		}

		channel := s.extractor.Extract(factextract.Near(text, item.HomeTeam, broadcastNearRadius)).Broadcaster
		if channel == "" {
			channel = s.extractor.Extract(text).Broadcaster
		}
		if channel == "" {
			s.logger.InfoContext(ctx, "broadcast not found", "home", item.HomeTeam, "away", item.AwayTeam)
			continue
		}
		out.Picks[i].Fixture.Channel = channel
		s.logger.DebugContext(ctx, "broadcast resolved", "home", item.HomeTeam, "away", item.AwayTeam, "channel", channel)
	}
	return out, nil
}

func broadcastQuery(home, away, day string) string {
	query := fmt.Sprintf("Which UK TV channel broadcasts the Premier League match %s vs %s", home, away)
	if day != "" {
		query += " on " + day
	}
	return query + "? Answer with the channel name."
}

package llmsource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/basketball"
	"github.com/riskibarqy/sports-dashboard/internal/domain/search"
	"github.com/riskibarqy/sports-dashboard/internal/platform/factextract"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

// Basketball implements basketball.SummarySource with one search prompt.
type Basketball struct {
	searcher search.Searcher
	now      func() time.Time
	logger   *logging.Logger
}

func NewBasketball(searcher search.Searcher, now func() time.Time, logger *logging.Logger) *Basketball {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Basketball{searcher: searcher, now: now, logger: logger.Named("llm_basketball")}
}

func (b *Basketball) Summary(ctx context.Context, team string) (basketball.Summary, error) {
	if b.searcher == nil {
		return basketball.Summary{}, fmt.Errorf("%w: no search provider for basketball", usecase.ErrDependencyUnavailable)
	}

	text, err := b.searcher.Search(ctx, basketballPrompt(b.now(), team))
	if err != nil {
		return basketball.Summary{}, fmt.Errorf("basketball search: %w", err)
	}
	payload, ok := factextract.JSONObject(text)
	if !ok {
		b.logger.WarnContext(ctx, "basketball answer is not json", "preview", preview(text))
		return basketball.Summary{}, fmt.Errorf("%w: basketball answer has no json object", usecase.ErrDependencyUnavailable)
	}

	out := basketball.Summary{
		Team:   factextract.StringOr(payload, team, "team", "name"),
		Record: factextract.String(payload, "record"),
		Rank:   factextract.String(payload, "ranking", "rank"),
	}
	if last := factextract.Object(payload, "last", "last_game", "lastResult"); last != nil {
		opponent, _ := basketball.OpponentMarker(factextract.String(last, "opp", "opponent"))
		out.Last = basketball.LastGame{
			Opponent: opponent,
			Result:   factextract.String(last, "result"),
			Score:    factextract.String(last, "score"),
			Date:     factextract.String(last, "date"),
		}
	}

	for _, raw := range factextract.Objects(payload, "schedule", "upcoming", "games") {
		opponent, away := basketball.OpponentMarker(factextract.String(raw, "opp", "opponent"))
		if _, teamsAway := basketball.OpponentMarker(factextract.String(raw, "teams")); teamsAway {
			away = true
		}
		if strings.EqualFold(factextract.String(raw, "location"), "away") {
			away = true
		}
		out.Upcoming = append(out.Upcoming, basketball.Scheduled{
			Opponent: opponent,
			Away:     away,
			Date:     factextract.String(raw, "date"),
			Clock:    factextract.String(raw, "time_pt", "time"),
			Channel:  factextract.String(raw, "channel", "tv"),
		})
	}

	b.logger.InfoContext(ctx, "basketball answer parsed", "record", out.Record, "rank", out.Rank, "upcoming", len(out.Upcoming))
	return out, nil
}

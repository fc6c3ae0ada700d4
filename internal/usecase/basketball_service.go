package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/basketball"
	"github.com/riskibarqy/sports-dashboard/internal/domain/broadcast"
	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

type BasketballConfig struct {
	TeamID   int
	TeamName string
	Upcoming int
	// Horizon bounds the upcoming-games window.
	Horizon time.Duration
	Venue   timezone.Source
	Table   broadcast.Table
}

// BasketballService builds the team card from a game-listing source when
// one is configured, otherwise from a summary source.
type BasketballService struct {
	games     basketball.Source
	summaries basketball.SummarySource
	converter *timezone.Converter
	cfg       BasketballConfig
	metrics   *metrics.Recorder
	logger    *logging.Logger
}

func NewBasketballService(
	games basketball.Source,
	summaries basketball.SummarySource,
	converter *timezone.Converter,
	cfg BasketballConfig,
	recorder *metrics.Recorder,
	logger *logging.Logger,
) *BasketballService {
	if converter == nil {
		converter = timezone.NewConverter(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Upcoming < 1 {
		cfg.Upcoming = 6
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = 30 * 24 * time.Hour
	}
	if len(cfg.Table.National) == 0 {
		cfg.Table = broadcast.DefaultTable
	}
	return &BasketballService{
		games:     games,
		summaries: summaries,
		converter: converter,
		cfg:       cfg,
		metrics:   recorder,
		logger:    logger.Named("basketball"),
	}
}

// Summary never fails except on rate limiting; a missing source yields a
// card with only the team name.
func (s *BasketballService) Summary(ctx context.Context) (snapshot.Basketball, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BasketballService.Summary")
	defer span.End()

	summary, err := s.fetch(ctx)
	if errors.Is(err, ErrRateLimited) {
		return snapshot.Basketball{}, err
	}
	if err != nil {
		s.metrics.SourceFailed("basketball")
		s.logger.WarnContext(ctx, "basketball summary unavailable", "error", err)
		summary = basketball.Summary{}
	}
	if summary.Team == "" {
		summary.Team = s.cfg.TeamName
	}
	return s.render(summary), nil
}

func (s *BasketballService) fetch(ctx context.Context) (basketball.Summary, error) {
	switch {
	case s.games != nil:
		return s.fromGames(ctx)
	case s.summaries != nil:
		s.metrics.SourceRequest("basketball")
		return s.summaries.Summary(ctx, s.cfg.TeamName)
	default:
		return basketball.Summary{}, nil
	}
}

func (s *BasketballService) fromGames(ctx context.Context) (basketball.Summary, error) {
	now := s.converter.Now()
	season := basketball.SeasonOf(now)
	team := basketball.Team{ID: s.cfg.TeamID, FullName: s.cfg.TeamName}

	s.metrics.SourceRequest("basketball")
	recent, err := s.games.RecentGames(ctx, team.ID, basketball.SeasonStart(season, now.Location()), now)
	if err != nil {
		return basketball.Summary{}, err
	}
	s.metrics.SourceRequest("basketball")
	upcoming, err := s.games.UpcomingGames(ctx, team.ID, now, now.Add(s.cfg.Horizon))
	if err != nil {
		return basketball.Summary{}, err
	}

	s.metrics.SourceRequest("basketball_standings")
	standing, err := s.games.TeamStanding(ctx, team.ID, season)
	if err != nil {
		s.metrics.SourceFailed("basketball_standings")
		s.logger.InfoContext(ctx, "basketball standings unavailable, rank omitted", "season", season, "error", err)
		standing = basketball.Standing{}
	}

	return basketball.Summarize(team, recent, upcoming, standing, s.cfg.Upcoming), nil
}

func (s *BasketballService) render(summary basketball.Summary) snapshot.Basketball {
	out := snapshot.Basketball{
		Team:   summary.Team,
		Record: summary.Record,
		Rank:   summary.Rank,
		LastResult: snapshot.GameResult{
			Opponent: summary.Last.Opponent,
			Result:   summary.Last.Result,
			Score:    summary.Last.Score,
			Date:     summary.Last.Date,
		},
		Upcoming: make([]snapshot.UpcomingGame, 0, len(summary.Upcoming)),
	}

	for _, game := range summary.Upcoming {
		var when timezone.Result
		if !game.StartsAt.IsZero() {
			when = s.converter.FromInstant(game.StartsAt, s.cfg.Venue)
		} else {
			when = s.converter.Convert(game.Date, game.Clock, s.cfg.Venue)
		}
		if when.Degraded {
			s.metrics.DegradedTime()
		}

		location := "home"
		if game.Away {
			location = "away"
		}
		tv := s.cfg.Table.Classify(game.Channel)
		out.Upcoming = append(out.Upcoming, snapshot.UpcomingGame{
			Opponent:       game.Opponent,
			Location:       location,
			DisplayTime:    when.Display,
			VenueLocalTime: when.VenueLocal,
			Channel:        tv.Channel,
			RawChannel:     tv.Raw,
			NationalTV:     tv.National,
		})
	}
	return out
}

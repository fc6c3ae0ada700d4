package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/selection"
	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/domain/teamname"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

type SelectionConfig struct {
	Seed           standings.Seed
	EliteGroup     []string
	ContenderCount int
	Venue          timezone.Source
}

// Selection is the outcome of one classification pass.
type Selection struct {
	Table    standings.Table
	Batch    selection.Batch
	Round    int
	Retained bool
}

type SelectionService struct {
	standingsSrc standings.Source
	fixtureSrc   fixture.Source
	classifier   *selection.Classifier
	names        *teamname.Normalizer
	converter    *timezone.Converter
	cfg          SelectionConfig
	metrics      *metrics.Recorder
	logger       *logging.Logger
}

func NewSelectionService(
	standingsSrc standings.Source,
	fixtureSrc fixture.Source,
	classifier *selection.Classifier,
	names *teamname.Normalizer,
	converter *timezone.Converter,
	cfg SelectionConfig,
	recorder *metrics.Recorder,
	logger *logging.Logger,
) *SelectionService {
	if logger == nil {
		logger = logging.Default()
	}
	if names == nil {
		names = teamname.NewNormalizer(teamname.DefaultAliases)
	}
	if classifier == nil {
		classifier = selection.NewClassifier(selection.DefaultRules(), names)
	}
	if converter == nil {
		converter = timezone.NewConverter(nil)
	}
	if cfg.ContenderCount < 1 {
		cfg.ContenderCount = 4
	}
	if cfg.Seed.Leader == "" {
		cfg.Seed = standings.DefaultSeed
	}
	if len(cfg.EliteGroup) == 0 {
		cfg.EliteGroup = standings.DefaultEliteGroup
	}
	return &SelectionService{
		standingsSrc: standingsSrc,
		fixtureSrc:   fixtureSrc,
		classifier:   classifier,
		names:        names,
		converter:    converter,
		cfg:          cfg,
		metrics:      recorder,
		logger:       logger.Named("selection"),
	}
}

// Select builds the standings context and decides the featured batch:
// the previous batch while any member is unplayed, otherwise a fresh pick
// from the current round, widened once to the next round when empty.
// Only ErrRateLimited is returned; every other failure degrades.
func (s *SelectionService) Select(ctx context.Context, prev snapshot.Football) (Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Select")
	defer span.End()

	table, err := s.table(ctx)
	if err != nil {
		return Selection{}, err
	}

	previous := s.previousBatch(prev)
	current, err := s.round(ctx, 0)
	if err != nil {
		return Selection{}, err
	}

	if !previous.Empty() {
		pool, err := s.carryOverPool(ctx, previous, current)
		if err != nil {
			return Selection{}, err
		}
		if kept, retained := selection.CarryOver(previous, pool, s.converter.Now()); retained {
			if missing := selection.Missing(previous, pool); len(missing) > 0 {
				s.logger.WarnContext(ctx, "carried fixtures missing from source", "count", len(missing))
			}
			s.metrics.BatchDecision(true, len(kept.Picks))
			s.logger.InfoContext(ctx, "previous batch retained", "round", kept.Round, "ids", kept.IDs())
			return Selection{Table: table, Batch: kept, Round: kept.Round, Retained: true}, nil
		}
		s.logger.InfoContext(ctx, "previous batch resolved, selecting fresh", "round", previous.Round)
	}

	batch := selection.Batch{Round: current.Number, Picks: s.classifier.Select(current.Fixtures, table)}
	if batch.Empty() && current.Number > 0 {
		next, err := s.round(ctx, current.Number+1)
		if err != nil {
			return Selection{}, err
		}
		if picks := s.classifier.Select(next.Fixtures, table); len(picks) > 0 {
			s.logger.InfoContext(ctx, "current round has no qualifying fixtures, using next round",
				"current", current.Number, "next", next.Number)
			batch = selection.Batch{Round: next.Number, Picks: picks}
		}
	}

	s.metrics.BatchDecision(false, len(batch.Picks))
	s.logger.InfoContext(ctx, "fresh batch selected", "round", batch.Round, "ids", batch.IDs(), "fallback_table", table.Fallback)
	return Selection{Table: table, Batch: batch, Round: batch.Round}, nil
}

func (s *SelectionService) table(ctx context.Context) (standings.Table, error) {
	if s.standingsSrc != nil {
		s.metrics.SourceRequest("standings")
		rows, err := s.standingsSrc.ListCurrent(ctx)
		switch {
		case errors.Is(err, ErrRateLimited):
			return standings.Table{}, err
		case err != nil:
			s.metrics.SourceFailed("standings")
			s.logger.WarnContext(ctx, "standings unavailable, using seed", "error", err)
		default:
			if table, ok := standings.FromRows(rows, s.cfg.ContenderCount, s.cfg.EliteGroup); ok {
				table.Leader = s.names.Normalize(table.Leader)
				table.Contenders = s.names.NormalizeAll(table.Contenders)
				return table, nil
			}
			s.logger.WarnContext(ctx, "standings source returned no teams, using seed")
		}
	}

	s.metrics.StandingsFallback()
	return standings.FromSeed(s.cfg.Seed, s.cfg.EliteGroup), nil
}

// round fetches one round; failures other than rate limiting yield an
// empty round so the caller can continue.
func (s *SelectionService) round(ctx context.Context, number int) (fixture.Round, error) {
	if s.fixtureSrc == nil {
		return fixture.Round{Number: number}, nil
	}
	s.metrics.SourceRequest("fixtures")
	round, err := s.fixtureSrc.ListByRound(ctx, number)
	switch {
	case errors.Is(err, ErrRateLimited):
		return fixture.Round{}, err
	case errors.Is(err, ErrNotFound):
		s.logger.InfoContext(ctx, "round not available from source", "round", number)
		return fixture.Round{Number: number}, nil
	case err != nil:
		s.metrics.SourceFailed("fixtures")
		s.logger.WarnContext(ctx, "fixtures unavailable", "round", number, "error", err)
		return fixture.Round{Number: number}, nil
	}
	return round, nil
}

// carryOverPool is the current round plus every round the previous batch
// was drawn from.
func (s *SelectionService) carryOverPool(ctx context.Context, previous selection.Batch, current fixture.Round) ([]fixture.Fixture, error) {
	pool := append([]fixture.Fixture(nil), current.Fixtures...)
	for _, number := range previous.Rounds() {
		if number == current.Number {
			continue
		}
		round, err := s.round(ctx, number)
		if err != nil {
			return nil, err
		}
		pool = append(pool, round.Fixtures...)
	}
	return pool, nil
}

// previousBatch rebuilds the stored batch from the last snapshot.
func (s *SelectionService) previousBatch(prev snapshot.Football) selection.Batch {
	batch := selection.Batch{Round: parseRoundLabel(prev.RoundLabel)}
	for _, item := range prev.SelectedFixtures {
		if strings.TrimSpace(item.SourceIdentifier) == "" {
			continue
		}
		tiers := make([]selection.Tier, 0, len(item.MatchedTiers))
		for _, tier := range item.MatchedTiers {
			tiers = append(tiers, selection.Tier(tier))
		}
		batch.Picks = append(batch.Picks, selection.Pick{Fixture: fixtureFromSnapshot(item), Tiers: tiers})
	}
	if batch.Round <= 0 && len(batch.Picks) > 0 {
		batch.Round = batch.Picks[0].Fixture.Round
	}
	return batch
}

func fixtureFromSnapshot(item snapshot.Fixture) fixture.Fixture {
	out := fixture.Fixture{
		SourceID:   item.SourceIdentifier,
		Round:      item.Round,
		HomeTeam:   item.Home,
		AwayTeam:   item.Away,
		VenueDay:   item.VenueDay,
		VenueClock: item.VenueClock,
		Status:     fixture.Status(item.Status).OrScheduled(),
	}
	if kickoff, err := time.Parse(time.RFC3339, item.KickoffAt); err == nil {
		out.KickoffAt = kickoff.UTC()
	} else {
		out.KickoffText = strings.TrimSuffix(strings.TrimSpace(item.VenueLocalTime), ")")
		if idx := strings.LastIndex(out.KickoffText, " ("); idx >= 0 {
			out.KickoffText = out.KickoffText[:idx]
		}
		if out.KickoffText == snapshot.TBD {
			out.KickoffText = ""
		}
	}
	switch item.BroadcastChannel {
	case snapshot.TBD, snapshot.UnresolvedChannel:
	default:
		out.Channel = item.BroadcastChannel
	}
	if home, away, ok := splitScoreline(item.Scoreline); ok {
		out.HomeScore, out.AwayScore = &home, &away
	}
	return out
}

// Football renders a selection into the dashboard section.
func (s *SelectionService) Football(sel Selection) snapshot.Football {
	out := snapshot.Football{
		RoundLabel: fixture.RoundLabel(sel.Round),
		Standings: snapshot.Standings{
			Leader:     sel.Table.Leader,
			Contenders: append([]string(nil), sel.Table.Contenders...),
		},
		SelectedFixtures: make([]snapshot.Fixture, 0, len(sel.Batch.Picks)),
	}
	for _, pick := range sel.Batch.Picks {
		out.SelectedFixtures = append(out.SelectedFixtures, s.fixture(pick))
	}
	return out
}

func (s *SelectionService) fixture(pick selection.Pick) snapshot.Fixture {
	item := pick.Fixture

	var when timezone.Result
	if !item.KickoffAt.IsZero() {
		when = s.converter.FromInstant(item.KickoffAt, s.cfg.Venue)
	} else {
		date, clock := splitKickoffText(item.KickoffText)
		when = s.converter.Convert(date, clock, s.cfg.Venue)
	}
	if when.Degraded {
		s.metrics.DegradedTime()
	}

	tiers := make([]int, 0, len(pick.Tiers))
	names := make([]string, 0, len(pick.Tiers))
	for _, tier := range pick.Tiers {
		tiers = append(tiers, int(tier))
		names = append(names, tier.Name())
	}

	out := snapshot.Fixture{
		Home:             s.names.Normalize(item.HomeTeam),
		Away:             s.names.Normalize(item.AwayTeam),
		Round:            item.Round,
		DisplayTime:      when.Display,
		VenueLocalTime:   when.VenueLocal,
		VenueDay:         firstNonEmpty(item.VenueDay, when.VenueDay),
		VenueClock:       firstNonEmpty(item.VenueClock, when.VenueClock),
		BroadcastChannel: item.Channel,
		MatchedTiers:     tiers,
		TierNames:        names,
		Status:           string(item.Status.OrScheduled()),
		Scoreline:        item.Scoreline(),
		SourceIdentifier: item.SourceID,
	}
	if !item.KickoffAt.IsZero() {
		out.KickoffAt = item.KickoffAt.UTC().Format(time.RFC3339)
	}
	return out
}

func splitKickoffText(text string) (date, clock string) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

func splitScoreline(line string) (home, away int, ok bool) {
	var h, a int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d-%d", &h, &a); err != nil {
		return 0, 0, false
	}
	return h, a, true
}

func parseRoundLabel(label string) int {
	var n int
	if _, err := fmt.Sscanf(strings.TrimPrefix(strings.TrimSpace(label), "R"), "%d", &n); err != nil {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

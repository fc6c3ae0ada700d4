package llmsource

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/search"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/domain/teamname"
	"github.com/riskibarqy/sports-dashboard/internal/platform/cache"
	"github.com/riskibarqy/sports-dashboard/internal/platform/factextract"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

var (
	fixtureNamespace = uuid.MustParse("6f1d3c1e-8b0e-4d8c-9f55-0c7a2b7d4e11")
	roundDigits      = regexp.MustCompile(`\d+`)
	matchSeparators  = []string{" vs. ", " vs ", " v. ", " v "}
)

type FootballConfig struct {
	Searcher    search.Searcher
	Converter   *timezone.Converter
	Venue       timezone.Source
	Competition string
	// Names folds spellings before fixture ids are derived.
	Names  *teamname.Normalizer
	Logger *logging.Logger
}

// Football answers both the standings and the fixture questions from a
// single search prompt. The parsed answer is reused for the whole run.
type Football struct {
	searcher    search.Searcher
	converter   *timezone.Converter
	venue       timezone.Source
	competition string
	names       *teamname.Normalizer
	logger      *logging.Logger
	validate    *validator.Validate
	answers     *cache.Store[footballAnswer]
}

type footballAnswer struct {
	leader     string
	contenders []string
	round      int
	fixtures   []fixture.Fixture
}

// fixtureRow is one upstream row after field-name folding.
type fixtureRow struct {
	Home    string `validate:"required"`
	Away    string `validate:"required,nefield=Home"`
	Day     string
	Clock   string
	Date    string
	Channel string
	Status  string
	Score   string
}

func NewFootball(cfg FootballConfig) *Football {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	converter := cfg.Converter
	if converter == nil {
		converter = timezone.NewConverter(nil)
	}
	names := cfg.Names
	if names == nil {
		names = teamname.NewNormalizer(teamname.DefaultAliases)
	}
	competition := strings.TrimSpace(cfg.Competition)
	if competition == "" {
		competition = "Premier League"
	}
	return &Football{
		searcher:    cfg.Searcher,
		converter:   converter,
		venue:       cfg.Venue,
		competition: competition,
		names:       names,
		logger:      logger.Named("llm_football"),
		validate:    validator.New(),
		answers:     cache.NewStore[footballAnswer](0),
	}
}

// ListCurrent implements standings.Source. The leader is ranked first,
// followed by the reported top four in order.
func (f *Football) ListCurrent(ctx context.Context) ([]standings.Row, error) {
	answer, err := f.answer(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]standings.Row, 0, len(answer.contenders)+1)
	seen := make(map[string]struct{}, len(answer.contenders)+1)
	add := func(team string) {
		if team == "" {
			return
		}
		if _, ok := seen[strings.ToLower(team)]; ok {
			return
		}
		seen[strings.ToLower(team)] = struct{}{}
		rows = append(rows, standings.Row{Position: len(rows) + 1, Team: team})
	}
	add(answer.leader)
	for _, team := range answer.contenders {
		add(team)
	}
	return rows, nil
}

// ListByRound implements fixture.Source. Only the matchweek the model
// reported is known; any other round is ErrNotFound.
func (f *Football) ListByRound(ctx context.Context, round int) (fixture.Round, error) {
	answer, err := f.answer(ctx)
	if err != nil {
		return fixture.Round{}, err
	}
	if round > 0 && round != answer.round {
		return fixture.Round{}, fmt.Errorf("%w: round %d not in search answer (has %d)", usecase.ErrNotFound, round, answer.round)
	}
	return fixture.Round{
		Number:   answer.round,
		Fixtures: append([]fixture.Fixture(nil), answer.fixtures...),
	}, nil
}

func (f *Football) answer(ctx context.Context) (footballAnswer, error) {
	if f.searcher == nil {
		return footballAnswer{}, fmt.Errorf("%w: no search provider for football", usecase.ErrDependencyUnavailable)
	}
	return f.answers.GetOrLoad(ctx, "football", func(ctx context.Context) (footballAnswer, error) {
		text, err := f.searcher.Search(ctx, footballPrompt(f.converter.Now(), f.competition))
		if err != nil {
			return footballAnswer{}, fmt.Errorf("football search: %w", err)
		}
		payload, ok := factextract.JSONObject(text)
		if !ok {
			f.logger.WarnContext(ctx, "football answer is not json", "preview", preview(text))
			return footballAnswer{}, fmt.Errorf("%w: football answer has no json object", usecase.ErrDependencyUnavailable)
		}
		answer := f.parse(ctx, payload)
		f.logger.InfoContext(ctx, "football answer parsed",
			"leader", answer.leader,
			"contenders", len(answer.contenders),
			"round", answer.round,
			"fixtures", len(answer.fixtures),
		)
		return answer, nil
	})
}

func (f *Football) parse(ctx context.Context, payload map[string]any) footballAnswer {
	out := footballAnswer{
		leader:     factextract.String(payload, "leader", "first", "first_place"),
		contenders: factextract.Strings(payload, "top_4", "top4", "contenders", "top_four"),
		round:      parseRound(factextract.String(payload, "round", "epl_round", "matchweek", "gameweek")),
	}

	rows := factextract.Objects(payload, "fixtures", "epl", "matches")
	out.fixtures = make([]fixture.Fixture, 0, len(rows))
	for _, raw := range rows {
		row := foldRow(raw)
		if err := f.validate.StructCtx(ctx, row); err != nil {
			f.logger.DebugContext(ctx, "football row dropped", "home", row.Home, "away", row.Away, "error", err)
			continue
		}
		out.fixtures = append(out.fixtures, f.toFixture(row, out.round))
	}
	return out
}

func foldRow(raw map[string]any) fixtureRow {
	row := fixtureRow{
		Home:    factextract.String(raw, "home", "home_team"),
		Away:    factextract.String(raw, "away", "away_team"),
		Day:     factextract.String(raw, "kickoff_day", "day"),
		Clock:   factextract.String(raw, "kickoff_time_uk", "kickoff_time", "time_uk", "time"),
		Date:    factextract.String(raw, "date", "kickoff_date"),
		Channel: factextract.String(raw, "broadcaster", "channel", "tv"),
		Status:  factextract.String(raw, "status"),
		Score:   factextract.String(raw, "score", "result"),
	}
	if row.Home == "" || row.Away == "" {
		row.Home, row.Away = splitMatch(factextract.String(raw, "teams", "match", "fixture"))
	}
	return row
}

func splitMatch(text string) (home, away string) {
	for _, sep := range matchSeparators {
		if parts := strings.SplitN(text, sep, 2); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}
	return "", ""
}

func (f *Football) toFixture(row fixtureRow, round int) fixture.Fixture {
	out := fixture.Fixture{
		SourceID: fixtureID(round, f.names.Normalize(row.Home), f.names.Normalize(row.Away)),
		Round:    round,
		HomeTeam: row.Home,
		AwayTeam: row.Away,
		Channel:  row.Channel,
		Status:   fixture.MapProviderStatus(row.Status),
	}

	if row.Date != "" && row.Clock != "" {
		converted := f.converter.Convert(row.Date, row.Clock, f.venue)
		if !converted.Degraded {
			out.KickoffAt = converted.Instant
		} else {
			out.KickoffText = strings.TrimSpace(row.Date + " " + row.Clock)
		}
		out.VenueDay = converted.VenueDay
		out.VenueClock = converted.VenueClock
	}
	if row.Day != "" {
		if day, ok := timezone.ParseWeekday(row.Day); ok {
			out.VenueDay = day.String()
		}
	}
	if row.Clock != "" {
		if clock := timezone.NormalizeClock(row.Clock); clock != "" {
			out.VenueClock = clock
		}
	}
	if out.VenueDay == "" && out.VenueClock == "" && out.KickoffText == "" {
		out.KickoffText = strings.TrimSpace(row.Day + " " + row.Clock)
	}

	if out.Status != fixture.StatusScheduled {
		out.HomeScore, out.AwayScore = parseScore(row.Score)
	}
	return out
}

// fixtureID is stable across runs for the same pairing in the same round,
// which carry-over relies on. Callers pass normalized names.
func fixtureID(round int, home, away string) string {
	key := strconv.Itoa(round) + "|" + strings.ToLower(home) + "|" + strings.ToLower(away)
	return uuid.NewSHA1(fixtureNamespace, []byte(key)).String()
}

func parseRound(raw string) int {
	digits := roundDigits.FindString(raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func parseScore(raw string) (*int, *int) {
	line := factextract.Scoreline(raw)
	if line == "" {
		return nil, nil
	}
	parts := strings.SplitN(line, "-", 2)
	home, errHome := strconv.Atoi(parts[0])
	away, errAway := strconv.Atoi(parts[1])
	if errHome != nil || errAway != nil {
		return nil, nil
	}
	return &home, &away
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 120 {
		return text[:120] + "..."
	}
	return text
}

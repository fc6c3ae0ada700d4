package snapshot

import "strings"

const (
	Dash    = "-"
	TBD     = "TBD"
	Unknown = ""
	// UnresolvedChannel stands in for a football broadcaster no lookup found.
	UnresolvedChannel = "UK TV"
)

// Limits caps list-valued sections independent of upstream volume.
type Limits struct {
	Fixtures   int
	Contenders int
	Upcoming   int
}

func DefaultLimits() Limits {
	return Limits{Fixtures: 3, Contenders: 4, Upcoming: 6}
}

// Defaults are the placeholders used when a section has no data.
type Defaults struct {
	Leader           string
	FixtureChannel   string
	BasketballTeam   string
	TennisCompetitor string
	TennisNextStatus string
	TennisNextName   string
	TennisNextDetail string
	MotorsportSeries string
	MotorsportStatus string
	MotorsportName   string
	MotorsportVenue  string
}

func DefaultDefaults() Defaults {
	return Defaults{
		Leader:           Dash,
		FixtureChannel:   UnresolvedChannel,
		BasketballTeam:   Dash,
		TennisCompetitor: Dash,
		TennisNextStatus: "Off-Season",
		TennisNextName:   "Next Tournament TBD",
		TennisNextDetail: "Check Schedule",
		MotorsportSeries: Dash,
		MotorsportStatus: TBD,
		MotorsportName:   "Next GP",
		MotorsportVenue:  "Circuit TBD",
	}
}

// Assembler fills placeholders and truncates lists; it holds no state
// beyond its configuration and never fails.
type Assembler struct {
	limits   Limits
	defaults Defaults
}

func NewAssembler(limits Limits, defaults Defaults) *Assembler {
	base := DefaultLimits()
	if limits.Fixtures < 1 {
		limits.Fixtures = base.Fixtures
	}
	if limits.Contenders < 1 {
		limits.Contenders = base.Contenders
	}
	if limits.Upcoming < 1 {
		limits.Upcoming = base.Upcoming
	}
	return &Assembler{limits: limits, defaults: defaults}
}

// Assemble returns a complete document from a possibly partial one.
func (a *Assembler) Assemble(in Document) Document {
	return Document{
		Updated:    orDefault(in.Updated, TBD),
		Football:   a.football(in.Football),
		Basketball: a.basketball(in.Basketball),
		Tennis:     a.individual(in.Tennis),
		Motorsport: a.series(in.Motorsport),
	}
}

func (a *Assembler) football(in Football) Football {
	contenders := make([]string, 0, a.limits.Contenders)
	for _, name := range in.Standings.Contenders {
		if len(contenders) == a.limits.Contenders {
			break
		}
		if name = strings.TrimSpace(name); name != "" {
			contenders = append(contenders, name)
		}
	}

	fixtures := make([]Fixture, 0, a.limits.Fixtures)
	for _, item := range in.SelectedFixtures {
		if len(fixtures) == a.limits.Fixtures {
			break
		}
		fixtures = append(fixtures, a.fixture(item))
	}

	return Football{
		RoundLabel: orDefault(in.RoundLabel, "R--"),
		Standings: Standings{
			Leader:     orDefault(in.Standings.Leader, a.defaults.Leader),
			Contenders: contenders,
		},
		SelectedFixtures: fixtures,
	}
}

func (a *Assembler) fixture(in Fixture) Fixture {
	out := in
	out.Home = orDefault(in.Home, TBD)
	out.Away = orDefault(in.Away, TBD)
	out.DisplayTime = orDefault(in.DisplayTime, TBD)
	out.VenueLocalTime = orDefault(in.VenueLocalTime, TBD)
	out.BroadcastChannel = orDefault(in.BroadcastChannel, a.defaults.FixtureChannel)
	out.Status = orDefault(in.Status, "Scheduled")
	out.MatchedTiers = append(make([]int, 0, len(in.MatchedTiers)), in.MatchedTiers...)
	out.TierNames = append(make([]string, 0, len(in.TierNames)), in.TierNames...)
	return out
}

func (a *Assembler) basketball(in Basketball) Basketball {
	upcoming := make([]UpcomingGame, 0, a.limits.Upcoming)
	for _, game := range in.Upcoming {
		if len(upcoming) == a.limits.Upcoming {
			break
		}
		game.Opponent = orDefault(game.Opponent, TBD)
		game.Location = orDefault(game.Location, "home")
		game.DisplayTime = orDefault(game.DisplayTime, TBD)
		game.VenueLocalTime = orDefault(game.VenueLocalTime, TBD)
		upcoming = append(upcoming, game)
	}

	return Basketball{
		Team:   orDefault(in.Team, a.defaults.BasketballTeam),
		Record: orDefault(in.Record, Dash),
		Rank:   orDefault(in.Rank, Dash),
		LastResult: GameResult{
			Opponent: orDefault(in.LastResult.Opponent, Dash),
			Result:   orDefault(in.LastResult.Result, Dash),
			Score:    orDefault(in.LastResult.Score, Dash),
			Date:     in.LastResult.Date,
		},
		Upcoming: upcoming,
	}
}

func (a *Assembler) individual(in Individual) Individual {
	return Individual{
		Competitor: orDefault(in.Competitor, a.defaults.TennisCompetitor),
		Recent: Event{
			Status: orDefault(in.Recent.Status, Dash),
			Name:   orDefault(in.Recent.Name, Dash),
			Detail: orDefault(in.Recent.Detail, Dash),
			Result: orDefault(in.Recent.Result, Dash),
			Date:   in.Recent.Date,
		},
		Next: Event{
			Status: orDefault(in.Next.Status, a.defaults.TennisNextStatus),
			Name:   orDefault(in.Next.Name, a.defaults.TennisNextName),
			Detail: orDefault(in.Next.Detail, a.defaults.TennisNextDetail),
			Result: orDefault(in.Next.Result, Dash),
			Date:   in.Next.Date,
		},
	}
}

func (a *Assembler) series(in Series) Series {
	return Series{
		Series: orDefault(in.Series, a.defaults.MotorsportSeries),
		Status: orDefault(in.Status, a.defaults.MotorsportStatus),
		Name:   orDefault(in.Name, a.defaults.MotorsportName),
		Venue:  orDefault(in.Venue, a.defaults.MotorsportVenue),
		Date:   in.Date,
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

package snapshot

import (
	"math/rand"
	"testing"

	"github.com/bytedance/sonic"
)

var requiredPaths = [][]string{
	{"updated"},
	{"football", "roundLabel"},
	{"football", "standings", "leader"},
	{"football", "standings", "contenders"},
	{"football", "selectedFixtures"},
	{"basketball", "team"},
	{"basketball", "record"},
	{"basketball", "rank"},
	{"basketball", "lastResult", "opponent"},
	{"basketball", "lastResult", "result"},
	{"basketball", "lastResult", "score"},
	{"basketball", "upcoming"},
	{"tennis", "competitor"},
	{"tennis", "recent", "status"},
	{"tennis", "recent", "name"},
	{"tennis", "next", "status"},
	{"tennis", "next", "name"},
	{"tennis", "next", "detail"},
	{"tennis", "next", "date"},
	{"motorsport", "status"},
	{"motorsport", "name"},
	{"motorsport", "venue"},
	{"motorsport", "date"},
}

var fixtureKeys = []string{
	"home", "away", "displayTime", "venueLocalTime", "broadcastChannel",
	"matchedTiers", "status", "scoreline", "sourceIdentifier",
}

var upcomingKeys = []string{"opponent", "location", "displayTime", "channel", "nationalTv"}

func fullDocument() Document {
	return Document{
		Updated: "2026-10-19 21:00:00 KST",
		Football: Football{
			RoundLabel: "R9",
			Standings:  Standings{Leader: "Arsenal", Contenders: []string{"Arsenal", "Manchester City", "Liverpool", "Chelsea", "Aston Villa"}},
			SelectedFixtures: []Fixture{
				{Home: "Chelsea", Away: "Arsenal", DisplayTime: "10.25 01:30 (KST)", MatchedTiers: []int{1}, SourceIdentifier: "1"},
				{Home: "Liverpool", Away: "Tottenham", MatchedTiers: []int{1}, SourceIdentifier: "2"},
				{Home: "Aston Villa", Away: "Newcastle", MatchedTiers: []int{2}, SourceIdentifier: "3"},
				{Home: "Brentford", Away: "Fulham", MatchedTiers: []int{4}, SourceIdentifier: "4"},
			},
		},
		Basketball: Basketball{
			Team: "Golden State Warriors", Record: "3-1", Rank: "4th West",
			LastResult: GameResult{Opponent: "LAL", Result: "W", Score: "121-115"},
			Upcoming: []UpcomingGame{
				{Opponent: "BOS"}, {Opponent: "DEN"}, {Opponent: "PHX"}, {Opponent: "SAC"},
				{Opponent: "LAC"}, {Opponent: "POR"}, {Opponent: "UTA"}, {Opponent: "MIN"},
			},
		},
		Tennis:     Individual{Competitor: "Carlos Alcaraz", Next: Event{Status: "Upcoming", Name: "Paris Masters"}},
		Motorsport: Series{Series: "Formula 1", Status: "Season 2026", Name: "Mexico City Grand Prix", Venue: "Autodromo Hermanos Rodriguez", Date: "10.25"},
	}
}

// blank drops fields at random to simulate partially-empty upstream data.
func blank(doc Document, rng *rand.Rand) Document {
	drop := func() bool { return rng.Intn(2) == 0 }
	if drop() {
		doc.Updated = ""
	}
	if drop() {
		doc.Football.Standings = Standings{}
	}
	if drop() {
		doc.Football.SelectedFixtures = nil
	} else {
		for i := range doc.Football.SelectedFixtures {
			if drop() {
				doc.Football.SelectedFixtures[i] = Fixture{}
			}
		}
	}
	if drop() {
		doc.Football.RoundLabel = ""
	}
	if drop() {
		doc.Basketball = Basketball{}
	}
	if drop() {
		doc.Basketball.LastResult = GameResult{}
	}
	if drop() {
		doc.Tennis = Individual{}
	}
	if drop() {
		doc.Motorsport = Series{}
	}
	return doc
}

func decode(t *testing.T, doc Document) map[string]any {
	t.Helper()
	raw, err := sonic.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func walk(root map[string]any, path []string) (any, bool) {
	var cur any = root
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func TestAssembler_NoMissingKeys(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultLimits(), DefaultDefaults())
	rng := rand.New(rand.NewSource(20261019))

	inputs := []Document{{}, fullDocument()}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, blank(fullDocument(), rng))
	}

	for i, in := range inputs {
		out := decode(t, a.Assemble(in))
		for _, path := range requiredPaths {
			value, ok := walk(out, path)
			if !ok {
				t.Fatalf("input %d: missing key %v", i, path)
			}
			if value == nil {
				t.Fatalf("input %d: null value at %v", i, path)
			}
		}

		fixtures, _ := walk(out, []string{"football", "selectedFixtures"})
		for _, item := range fixtures.([]any) {
			for _, key := range fixtureKeys {
				if v, ok := item.(map[string]any)[key]; !ok || v == nil {
					t.Fatalf("input %d: fixture missing %s", i, key)
				}
			}
		}
		upcoming, _ := walk(out, []string{"basketball", "upcoming"})
		for _, item := range upcoming.([]any) {
			for _, key := range upcomingKeys {
				if _, ok := item.(map[string]any)[key]; !ok {
					t.Fatalf("input %d: upcoming game missing %s", i, key)
				}
			}
		}
	}
}

func TestAssembler_TruncatesAndFillsPlaceholders(t *testing.T) {
	t.Parallel()

	a := NewAssembler(DefaultLimits(), DefaultDefaults())
	out := a.Assemble(fullDocument())

	if got := len(out.Football.SelectedFixtures); got != 3 {
		t.Fatalf("expected 3 fixtures, got %d", got)
	}
	if got := len(out.Football.Standings.Contenders); got != 4 {
		t.Fatalf("expected 4 contenders, got %d", got)
	}
	if got := len(out.Basketball.Upcoming); got != 6 {
		t.Fatalf("expected 6 upcoming games, got %d", got)
	}
	if got := out.Football.SelectedFixtures[1].BroadcastChannel; got != UnresolvedChannel {
		t.Fatalf("expected unresolved channel placeholder, got %q", got)
	}
	if got := out.Football.SelectedFixtures[1].DisplayTime; got != TBD {
		t.Fatalf("expected TBD display time, got %q", got)
	}

	empty := a.Assemble(Document{})
	if empty.Football.RoundLabel != "R--" || empty.Basketball.Record != Dash {
		t.Fatalf("unexpected placeholders %+v", empty)
	}
	if empty.Tennis.Next.Status != "Off-Season" || empty.Motorsport.Venue != "Circuit TBD" {
		t.Fatalf("unexpected secondary placeholders %+v %+v", empty.Tennis, empty.Motorsport)
	}
	if empty.Football.SelectedFixtures == nil || empty.Basketball.Upcoming == nil {
		t.Fatalf("lists must encode as [] not null")
	}
}

func TestAssembler_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	a := NewAssembler(Limits{}, DefaultDefaults())
	in := fullDocument()
	out := a.Assemble(in)
	out.Football.SelectedFixtures[0].MatchedTiers[0] = 99
	if in.Football.SelectedFixtures[0].MatchedTiers[0] != 1 {
		t.Fatalf("assembled document shares tier slice with input")
	}
}

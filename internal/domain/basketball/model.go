package basketball

import (
	"strconv"
	"strings"
	"time"
)

type Team struct {
	ID           int
	Abbreviation string
	FullName     string
}

// Game is one matchup from the provider's point of view.
type Game struct {
	ID           string
	Date         string
	StartsAt     time.Time
	Home         Team
	Visitor      Team
	HomeScore    int
	VisitorScore int
	Status       string
	Finished     bool
}

// Standing is one team's line in the conference table.
type Standing struct {
	TeamID         int
	Wins           int
	Losses         int
	Conference     string
	ConferenceRank int
}

func (g Game) IsHome(teamID int) bool {
	return g.Home.ID == teamID
}

func (g Game) Opponent(teamID int) Team {
	if g.IsHome(teamID) {
		return g.Visitor
	}
	return g.Home
}

// Result is "W" or "L" for teamID, "-" for unfinished or tied games.
func (g Game) Result(teamID int) string {
	if !g.Finished {
		return "-"
	}
	own, other := g.scores(teamID)
	switch {
	case own > other:
		return "W"
	case own < other:
		return "L"
	default:
		return "-"
	}
}

// Score renders teamID's points first, e.g. "121-115".
func (g Game) Score(teamID int) string {
	if !g.Finished {
		return "-"
	}
	own, other := g.scores(teamID)
	return strconv.Itoa(own) + "-" + strconv.Itoa(other)
}

func (g Game) scores(teamID int) (own, other int) {
	if g.IsHome(teamID) {
		return g.HomeScore, g.VisitorScore
	}
	return g.VisitorScore, g.HomeScore
}

// Record counts wins and losses over finished games, e.g. "5-2".
func Record(games []Game, teamID int) string {
	wins, losses := 0, 0
	for _, g := range games {
		switch g.Result(teamID) {
		case "W":
			wins++
		case "L":
			losses++
		}
	}
	return strconv.Itoa(wins) + "-" + strconv.Itoa(losses)
}

func (s Standing) Record() string {
	return strconv.Itoa(s.Wins) + "-" + strconv.Itoa(s.Losses)
}

// Rank renders "4th West"; "-" when the rank is unknown.
func (s Standing) Rank() string {
	if s.ConferenceRank <= 0 {
		return "-"
	}
	out := Ordinal(s.ConferenceRank)
	if s.Conference != "" {
		out += " " + strings.TrimSpace(s.Conference)
	}
	return out
}

func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// SeasonOf returns the season a date belongs to; seasons start in October
// and are named after their starting year.
func SeasonOf(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

// SeasonStart is the first day considered for the season record.
func SeasonStart(season int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(season, time.October, 1, 0, 0, 0, 0, loc)
}

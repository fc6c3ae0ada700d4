package basketball

import (
	"strings"
	"time"
)

// Summary is one team's dashboard card before display formatting.
type Summary struct {
	Team     string
	Record   string
	Rank     string
	Last     LastGame
	Upcoming []Scheduled
}

type LastGame struct {
	Opponent string
	Result   string
	Score    string
	Date     string
}

// Scheduled is an upcoming game. StartsAt is set when the source knows the
// instant; otherwise Date ("MM.DD") and Clock carry venue-local text.
type Scheduled struct {
	Opponent string
	Away     bool
	StartsAt time.Time
	Date     string
	Clock    string
	Channel  string
}

// OpponentMarker strips a leading or embedded "@" and reports whether it
// marked an away game.
func OpponentMarker(raw string) (name string, away bool) {
	away = strings.Contains(raw, "@")
	name = strings.TrimSpace(strings.ReplaceAll(raw, "@", ""))
	return name, away
}

// Summarize builds a card from provider games. standing may be zero, in
// which case the record falls back to the finished games and rank is "-".
func Summarize(team Team, recent, upcoming []Game, standing Standing, limit int) Summary {
	out := Summary{
		Team:   team.FullName,
		Record: Record(recent, team.ID),
		Rank:   standing.Rank(),
		Last:   LastGame{Opponent: "-", Result: "-", Score: "-"},
	}
	if standing.Wins+standing.Losses > 0 {
		out.Record = standing.Record()
	}

	for i := len(recent) - 1; i >= 0; i-- {
		g := recent[i]
		if !g.Finished {
			continue
		}
		if out.Team == "" {
			out.Team = ownName(g, team.ID)
		}
		out.Last = LastGame{
			Opponent: g.Opponent(team.ID).FullName,
			Result:   g.Result(team.ID),
			Score:    g.Score(team.ID),
			Date:     g.Date,
		}
		break
	}

	for _, g := range upcoming {
		if limit > 0 && len(out.Upcoming) == limit {
			break
		}
		if out.Team == "" {
			out.Team = ownName(g, team.ID)
		}
		out.Upcoming = append(out.Upcoming, Scheduled{
			Opponent: g.Opponent(team.ID).FullName,
			Away:     !g.IsHome(team.ID),
			StartsAt: g.StartsAt,
			Date:     g.Date,
		})
	}
	return out
}

func ownName(g Game, teamID int) string {
	if g.IsHome(teamID) {
		return g.Home.FullName
	}
	return g.Visitor.FullName
}

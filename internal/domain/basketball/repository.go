package basketball

import (
	"context"
	"time"
)

// Source reads one team's games and standing.
type Source interface {
	RecentGames(ctx context.Context, teamID int, from, to time.Time) ([]Game, error)
	UpcomingGames(ctx context.Context, teamID int, from, to time.Time) ([]Game, error)
	TeamStanding(ctx context.Context, teamID, season int) (Standing, error)
}

// SummarySource answers with a whole card at once, for providers that
// cannot list games.
type SummarySource interface {
	Summary(ctx context.Context, team string) (Summary, error)
}

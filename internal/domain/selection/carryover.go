package selection

import (
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
)

// CarryOver decides whether the previously published batch stays. It
// returns the batch with refreshed status and scores and retained=true
// while any member is still unplayed. Members missing from pool keep their
// last known status, so an unplayed member that vanished from the feed
// holds the batch until its kickoff is stale (see fixture.IsStale), after
// which it counts as resolved. An empty previous batch is never retained.
func CarryOver(prev Batch, pool []fixture.Fixture, now time.Time) (Batch, bool) {
	if prev.Empty() {
		return Batch{}, false
	}

	index := make(map[string]fixture.Fixture, len(pool))
	for _, item := range pool {
		if item.SourceID != "" {
			index[item.SourceID] = item
		}
	}

	resolved := true
	refreshed := make([]Pick, 0, len(prev.Picks))
	for _, pick := range prev.Picks {
		if current, ok := index[pick.Fixture.SourceID]; ok {
			pick.Fixture = refresh(pick.Fixture, current)
		}
		if !pick.Fixture.Status.IsFinished() && !pick.Fixture.IsStale(now) {
			resolved = false
		}
		refreshed = append(refreshed, pick)
	}

	if resolved {
		return Batch{}, false
	}
	return Batch{Round: prev.Round, Picks: refreshed}, true
}

// Missing lists previous members whose id is absent from pool.
func Missing(prev Batch, pool []fixture.Fixture) []Pick {
	index := make(map[string]struct{}, len(pool))
	for _, item := range pool {
		index[item.SourceID] = struct{}{}
	}
	out := make([]Pick, 0)
	for _, pick := range prev.Picks {
		if _, ok := index[pick.Fixture.SourceID]; !ok {
			out = append(out, pick)
		}
	}
	return out
}

func refresh(stored, current fixture.Fixture) fixture.Fixture {
	stored.Status = current.Status.OrScheduled()
	if current.HomeScore != nil && current.AwayScore != nil {
		stored.HomeScore = current.HomeScore
		stored.AwayScore = current.AwayScore
	}
	if !current.KickoffAt.IsZero() {
		stored.KickoffAt = current.KickoffAt
		stored.KickoffText = ""
		if current.VenueDay != "" {
			stored.VenueDay = current.VenueDay
			stored.VenueClock = current.VenueClock
		}
	}
	if stored.Channel == "" {
		stored.Channel = current.Channel
	}
	return stored
}

package fixture

import "time"

// StaleUnplayedAfter is how long past kickoff an unplayed fixture still
// counts as pending.
const StaleUnplayedAfter = 72 * time.Hour

// IsStale reports an unplayed fixture whose kickoff is more than
// StaleUnplayedAfter before now. Providers leave such rows behind when a
// result never arrives.
func (f Fixture) IsStale(now time.Time) bool {
	if f.Status == StatusFinished || f.Status == StatusInProgress || f.KickoffAt.IsZero() {
		return false
	}
	return f.KickoffAt.Before(now.Add(-StaleUnplayedAfter))
}

// CurrentRound picks the matchweek a dashboard should feature: the lowest
// round with a live match, otherwise the lowest round with an unplayed
// match, otherwise the last round seen. Zero means no round numbers at all.
func CurrentRound(fixtures []Fixture, now time.Time) int {
	liveMin := 0
	upcomingMin := 0
	lastKnown := 0

	for _, item := range fixtures {
		if item.Round <= 0 {
			continue
		}
		if item.Round > lastKnown {
			lastKnown = item.Round
		}

		switch item.Status {
		case StatusInProgress:
			if liveMin == 0 || item.Round < liveMin {
				liveMin = item.Round
			}
			continue
		case StatusFinished:
			continue
		}

		// An unfinished kickoff far in the past is a stale provider row,
		// not an active round.
		if item.IsStale(now) {
			continue
		}
		if upcomingMin == 0 || item.Round < upcomingMin {
			upcomingMin = item.Round
		}
	}

	if liveMin > 0 {
		return liveMin
	}
	if upcomingMin > 0 {
		return upcomingMin
	}
	return lastKnown
}

// InRound filters fixtures to one round number.
func InRound(fixtures []Fixture, round int) []Fixture {
	out := make([]Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.Round == round {
			out = append(out, item)
		}
	}
	return out
}

package fixture

import (
	"strconv"
	"strings"
	"time"
)

// Status is the three-state lifecycle the selection pipeline reasons about.
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusInProgress Status = "InProgress"
	StatusFinished   Status = "Finished"
)

// Fixture is one football match as reported by a source adapter.
type Fixture struct {
	SourceID  string
	Round     int
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	// KickoffText keeps the provider's raw "date time" when KickoffAt
	// could not be resolved.
	KickoffText string
	// VenueDay and VenueClock are the kickoff weekday ("Saturday") and
	// "HH:MM" in the venue timezone; empty when unknown.
	VenueDay   string
	VenueClock string
	Channel    string
	Status     Status
	HomeScore  *int
	AwayScore  *int
}

// Round is the fixture list for one matchweek.
type Round struct {
	Number   int
	Fixtures []Fixture
}

// Label renders "R<n>", or "R--" when the round is unknown.
func (r Round) Label() string {
	return RoundLabel(r.Number)
}

func RoundLabel(number int) string {
	if number <= 0 {
		return "R--"
	}
	return "R" + strconv.Itoa(number)
}

// Scoreline renders "2-1" once both scores are known.
func (f Fixture) Scoreline() string {
	if f.HomeScore == nil || f.AwayScore == nil {
		return ""
	}
	return strconv.Itoa(*f.HomeScore) + "-" + strconv.Itoa(*f.AwayScore)
}

// MapProviderStatus folds provider status codes and words into the
// lifecycle. Postponed, cancelled and abandoned matches count as Finished:
// they will not be played in this round.
func MapProviderStatus(value string) Status {
	status := strings.ToUpper(strings.TrimSpace(value))
	status = strings.ReplaceAll(status, " ", "_")
	switch status {
	case "", "SCHEDULED", "NS", "NOT_STARTED", "TBA", "TBD", "UPCOMING", "FIXTURE":
		return StatusScheduled
	case "LIVE", "IN_PLAY", "INPLAY", "INPROGRESS", "IN_PROGRESS", "HT", "HALF_TIME", "1H", "2H", "ET", "BREAK", "PEN_LIVE":
		return StatusInProgress
	case "FINISHED", "FT", "FULL_TIME", "AET", "PEN", "FT_PEN", "ENDED", "FINAL", "COMPLETED",
		"CANCELLED", "CANCELED", "POSTPONED", "ABANDONED", "AWARDED", "WO":
		return StatusFinished
	default:
		return StatusScheduled
	}
}

func (s Status) IsFinished() bool {
	return s == StatusFinished
}

func (s Status) OrScheduled() Status {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished:
		return s
	default:
		return StatusScheduled
	}
}

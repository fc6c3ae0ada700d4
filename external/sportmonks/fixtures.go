package sportmonks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

var digitsRegex = regexp.MustCompile(`\d+`)

// ListByRound returns one round of the configured season. The whole season
// schedule is fetched once per client and sliced locally.
func (c *Client) ListByRound(ctx context.Context, round int) (fixture.Round, error) {
	all, err := c.seasonFixtures(ctx)
	if err != nil {
		return fixture.Round{}, err
	}

	if round <= 0 {
		round = fixture.CurrentRound(all, c.now())
	}
	if round <= 0 {
		return fixture.Round{}, fmt.Errorf("%w: schedule season_id=%d has no numbered rounds", usecase.ErrDependencyUnavailable, c.seasonID)
	}

	return fixture.Round{Number: round, Fixtures: fixture.InRound(all, round)}, nil
}

func (c *Client) seasonFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	if c.seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be greater than zero", usecase.ErrInvalidInput)
	}

	key := "schedule:" + strconv.FormatInt(c.seasonID, 10)
	return c.schedule.GetOrLoad(ctx, key, func(ctx context.Context) ([]fixture.Fixture, error) {
		path := fmt.Sprintf("/schedules/seasons/%d", c.seasonID)
		var schedule scheduleEnvelope
		if _, err := c.doJSON(ctx, path, nil, &schedule); err != nil {
			return nil, fmt.Errorf("fetch schedule season_id=%d: %w", c.seasonID, err)
		}
		return c.mapSchedule(schedule), nil
	})
}

func (c *Client) mapSchedule(schedule scheduleEnvelope) []fixture.Fixture {
	byID := make(map[int64]fixture.Fixture, 380)
	for _, stage := range schedule.Data {
		for _, round := range stage.Rounds {
			number := parseRoundNumber(round.Name, 0)
			for _, item := range round.Fixtures {
				if item.ID <= 0 {
					continue
				}
				byID[item.ID] = c.mapFixture(item, number)
			}
		}
	}

	out := make([]fixture.Fixture, 0, len(byID))
	for _, item := range byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].SourceID < out[j].SourceID
	})
	return out
}

func (c *Client) mapFixture(item scheduleFixture, round int) fixture.Fixture {
	home, away := resolveFixtureParticipants(item.Participants)
	homeScore, awayScore := resolveFixtureScores(item.Scores, item.Participants)
	status := mapFixtureStatus(item.StateID, item.ResultInfo)
	if status == fixture.StatusScheduled {
		homeScore, awayScore = nil, nil
	}

	out := fixture.Fixture{
		SourceID:  strconv.FormatInt(item.ID, 10),
		Round:     round,
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    status,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	if kickoff := parseProviderDateTime(item.StartingAt); kickoff != nil {
		local := kickoff.In(c.venue)
		out.KickoffAt = *kickoff
		out.VenueDay = local.Weekday().String()
		out.VenueClock = local.Format("15:04")
	} else {
		out.KickoffText = strings.TrimSpace(item.StartingAt)
	}
	return out
}

// parseProviderDateTime reads SportMonks "2006-01-02 15:04:05" values,
// which are UTC.
func parseProviderDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z07:00",
		time.RFC3339,
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func parseRoundNumber(raw string, fallback int) int {
	candidate := digitsRegex.FindString(strings.TrimSpace(raw))
	if candidate == "" {
		return fallback
	}
	value, err := strconv.Atoi(candidate)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func resolveFixtureParticipants(participants []fixtureParticipant) (string, string) {
	var homeName, awayName string
	for _, item := range participants {
		switch strings.ToLower(strings.TrimSpace(item.Meta.Location)) {
		case "home":
			homeName = strings.TrimSpace(item.Name)
		case "away":
			awayName = strings.TrimSpace(item.Name)
		}
	}
	return homeName, awayName
}

func resolveFixtureScores(scores []fixtureScoreItem, participants []fixtureParticipant) (*int, *int) {
	if len(scores) == 0 {
		return nil, nil
	}

	var homeParticipantID, awayParticipantID int64
	for _, item := range participants {
		switch strings.ToLower(strings.TrimSpace(item.Meta.Location)) {
		case "home":
			homeParticipantID = item.ID
		case "away":
			awayParticipantID = item.ID
		}
	}

	bestWeight := 0
	homeValues := map[int]int{}
	awayValues := map[int]int{}
	for _, score := range scores {
		value, ok := score.numericScore()
		if !ok {
			continue
		}

		weight := scoreDescriptionWeight(score.Description)
		if weight > bestWeight {
			bestWeight = weight
			homeValues = map[int]int{}
			awayValues = map[int]int{}
		}
		if weight < bestWeight {
			continue
		}

		if score.ParticipantID == homeParticipantID && homeParticipantID > 0 {
			homeValues[weight] = value
		}
		if score.ParticipantID == awayParticipantID && awayParticipantID > 0 {
			awayValues[weight] = value
		}
	}

	var home, away *int
	if value, ok := homeValues[bestWeight]; ok {
		home = &value
	}
	if value, ok := awayValues[bestWeight]; ok {
		away = &value
	}
	return home, away
}

func scoreDescriptionWeight(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "current":
		return 6
	case strings.Contains(value, "normal_time"), strings.Contains(value, "90"):
		return 5
	case strings.Contains(value, "extra_time"):
		return 4
	case strings.Contains(value, "penalt"):
		return 3
	case value == "1st_half", value == "2nd_half":
		return 2
	default:
		return 1
	}
}

// mapFixtureStatus folds SportMonks state ids into the lifecycle.
// Postponed (10) and cancelled/abandoned (11, 12) count as Finished.
func mapFixtureStatus(stateID int64, resultInfo string) fixture.Status {
	switch stateID {
	case 2, 3, 4, 6, 7, 8, 9:
		return fixture.StatusInProgress
	case 5, 10, 11, 12, 13, 14:
		return fixture.StatusFinished
	case 1:
		return fixture.StatusScheduled
	}

	info := strings.ToLower(strings.TrimSpace(resultInfo))
	switch {
	case strings.Contains(info, "postpon"), strings.Contains(info, "cancel"), strings.Contains(info, "abandon"):
		return fixture.StatusFinished
	case strings.Contains(info, "live"), strings.Contains(info, "in play"), strings.Contains(info, "half"):
		return fixture.StatusInProgress
	case strings.Contains(info, "finish"), strings.Contains(info, "full time"), strings.Contains(info, "aet"), strings.Contains(info, "pen"),
		strings.Contains(info, "won"), strings.Contains(info, "draw"):
		return fixture.StatusFinished
	default:
		return fixture.StatusScheduled
	}
}

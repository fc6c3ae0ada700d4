package balldontlie

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riskibarqy/sports-dashboard/internal/domain/basketball"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

type standingsEnvelope struct {
	Data []standingPayload `json:"data"`
}

type standingPayload struct {
	Team           teamPayload `json:"team"`
	ConferenceRank int         `json:"conference_rank"`
	Wins           int         `json:"wins"`
	Losses         int         `json:"losses"`
}

// TeamStanding returns the team's conference line for a season.
func (c *Client) TeamStanding(ctx context.Context, teamID, season int) (basketball.Standing, error) {
	query := url.Values{}
	query.Set("season", strconv.Itoa(season))

	var envelope standingsEnvelope
	if err := c.getJSON(ctx, "/v1/standings", query, &envelope); err != nil {
		return basketball.Standing{}, fmt.Errorf("list standings season=%d: %w", season, err)
	}

	for _, item := range envelope.Data {
		if item.Team.ID != teamID {
			continue
		}
		return basketball.Standing{
			TeamID:         teamID,
			Wins:           item.Wins,
			Losses:         item.Losses,
			Conference:     item.Team.Conference,
			ConferenceRank: item.ConferenceRank,
		}, nil
	}
	return basketball.Standing{}, fmt.Errorf("%w: team_id=%d season=%d", usecase.ErrNotFound, teamID, season)
}

package balldontlie

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/basketball"
)

type gamesEnvelope struct {
	Data []gamePayload `json:"data"`
	Meta struct {
		NextCursor *int64 `json:"next_cursor"`
	} `json:"meta"`
}

type gamePayload struct {
	ID               int64       `json:"id"`
	Date             string      `json:"date"`
	Datetime         string      `json:"datetime"`
	Status           string      `json:"status"`
	Period           int         `json:"period"`
	HomeTeam         teamPayload `json:"home_team"`
	VisitorTeam      teamPayload `json:"visitor_team"`
	HomeTeamScore    int         `json:"home_team_score"`
	VisitorTeamScore int         `json:"visitor_team_score"`
}

type teamPayload struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
	Conference   string `json:"conference"`
}

// RecentGames returns finished games in [from, to], oldest first.
func (c *Client) RecentGames(ctx context.Context, teamID int, from, to time.Time) ([]basketball.Game, error) {
	games, err := c.listGames(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]basketball.Game, 0, len(games))
	for _, g := range games {
		if g.Finished {
			out = append(out, g)
		}
	}
	return out, nil
}

// UpcomingGames returns unfinished games in [from, to], soonest first.
func (c *Client) UpcomingGames(ctx context.Context, teamID int, from, to time.Time) ([]basketball.Game, error) {
	games, err := c.listGames(ctx, teamID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]basketball.Game, 0, len(games))
	for _, g := range games {
		if !g.Finished {
			out = append(out, g)
		}
	}
	return out, nil
}

func (c *Client) listGames(ctx context.Context, teamID int, from, to time.Time) ([]basketball.Game, error) {
	query := url.Values{}
	query.Add("team_ids[]", strconv.Itoa(teamID))
	query.Set("start_date", from.Format("2006-01-02"))
	query.Set("end_date", to.Format("2006-01-02"))
	query.Set("per_page", strconv.Itoa(defaultPageSize))

	out := make([]basketball.Game, 0, 32)
	for page := 0; page < maxPages; page++ {
		var envelope gamesEnvelope
		if err := c.getJSON(ctx, "/v1/games", query, &envelope); err != nil {
			return nil, fmt.Errorf("list games team_id=%d: %w", teamID, err)
		}
		for _, item := range envelope.Data {
			out = append(out, mapGame(item))
		}
		if envelope.Meta.NextCursor == nil || len(envelope.Data) == 0 {
			break
		}
		query.Set("cursor", strconv.FormatInt(*envelope.Meta.NextCursor, 10))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out, nil
}

func mapGame(item gamePayload) basketball.Game {
	status := strings.TrimSpace(item.Status)
	return basketball.Game{
		ID:           strconv.FormatInt(item.ID, 10),
		Date:         strings.TrimSpace(item.Date),
		StartsAt:     gameStart(item),
		Home:         mapTeam(item.HomeTeam),
		Visitor:      mapTeam(item.VisitorTeam),
		HomeScore:    item.HomeTeamScore,
		VisitorScore: item.VisitorTeamScore,
		Status:       status,
		Finished:     strings.EqualFold(status, "Final"),
	}
}

func mapTeam(item teamPayload) basketball.Team {
	name := strings.TrimSpace(item.FullName)
	if name == "" {
		name = strings.TrimSpace(item.Name)
	}
	return basketball.Team{
		ID:           item.ID,
		Abbreviation: strings.TrimSpace(item.Abbreviation),
		FullName:     name,
	}
}

// gameStart prefers the tip-off instant. Older payloads only carry a date,
// and scheduled games sometimes put the ISO tip-off in status.
func gameStart(item gamePayload) time.Time {
	for _, raw := range []string{item.Datetime, item.Status, item.Date} {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed.UTC()
			}
		}
	}
	return time.Time{}
}

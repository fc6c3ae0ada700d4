package sportmonks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

// ListCurrent returns the season table ordered by position.
func (c *Client) ListCurrent(ctx context.Context) ([]standings.Row, error) {
	if c.seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be greater than zero", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/standings/seasons/%d", c.seasonID)
	query := map[string]string{
		"include": defaultIncludeStanding,
	}

	var envelope standingsEnvelope
	if _, err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings season_id=%d: %w", c.seasonID, err)
	}
	return parseStandings(collectStandingRows(envelope.Data)), nil
}

func parseStandings(items []map[string]any) []standings.Row {
	out := make([]standings.Row, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		participant := relationDataMap(item["participant"])
		name := getString(participant, "name")
		if name == "" {
			name = getString(item, "name")
		}

		position := getInt(item, "position")
		if position <= 0 {
			position = getInt(item, "rank")
		}
		if position <= 0 || name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		out = append(out, standings.Row{
			Position: position,
			Team:     name,
			Points:   getInt(item, "points"),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Points > out[j].Points
	})
	return out
}

// collectStandingRows flattens grouped tables (stage -> group -> rows).
func collectStandingRows(items []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if _, ok := item["position"]; ok {
			out = append(out, item)
			continue
		}
		for _, key := range []string{"standings", "details", "rows"} {
			nested, ok := relationAny(item[key]).([]any)
			if !ok {
				continue
			}
			for _, child := range nested {
				if row, ok := child.(map[string]any); ok {
					out = append(out, collectStandingRows([]map[string]any{row})...)
				}
			}
		}
	}
	return out
}

func relationAny(raw any) any {
	if obj, ok := raw.(map[string]any); ok {
		if data, ok := obj["data"]; ok {
			return data
		}
	}
	return raw
}

func relationDataMap(raw any) map[string]any {
	if raw == nil {
		return nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	switch typed := src[key].(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

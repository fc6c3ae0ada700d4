package sportmonks

import (
	"strconv"
	"strings"
)

type scheduleEnvelope struct {
	Data []scheduleStage `json:"data"`
}

type scheduleStage struct {
	Rounds []scheduleRound `json:"rounds"`
}

type scheduleRound struct {
	Name     string            `json:"name"`
	Fixtures []scheduleFixture `json:"fixtures"`
}

type scheduleFixture struct {
	ID           int64                `json:"id"`
	StartingAt   string               `json:"starting_at"`
	StateID      int64                `json:"state_id"`
	ResultInfo   string               `json:"result_info"`
	Participants []fixtureParticipant `json:"participants"`
	Scores       []fixtureScoreItem   `json:"scores"`
}

type fixtureParticipant struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	ShortCode string                 `json:"short_code"`
	Meta      fixtureParticipantMeta `json:"meta"`
}

type fixtureParticipantMeta struct {
	Location string `json:"location"`
}

type fixtureScoreItem struct {
	ParticipantID int64          `json:"participant_id"`
	Description   string         `json:"description"`
	Score         map[string]any `json:"score"`
}

func (f fixtureScoreItem) numericScore() (int, bool) {
	for _, key := range []string{"goals", "score", "value", "total"} {
		candidate, ok := f.Score[key]
		if !ok || candidate == nil {
			continue
		}
		score := int(asFloat64(candidate))
		if score >= 0 {
			return score, true
		}
	}
	return 0, false
}

type standingsEnvelope struct {
	Data []map[string]any `json:"data"`
}

func asFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

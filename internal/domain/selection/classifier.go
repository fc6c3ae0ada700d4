// Package selection decides which football fixtures the dashboard features
// and keeps that choice stable until every featured match has been played.
package selection

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/domain/teamname"
)

type Classifier struct {
	rules Rules
	names *teamname.Normalizer
}

func NewClassifier(rules Rules, names *teamname.Normalizer) *Classifier {
	if rules.Limit < 1 {
		rules.Limit = DefaultRules().Limit
	}
	if names == nil {
		names = teamname.NewNormalizer(teamname.DefaultAliases)
	}
	return &Classifier{rules: rules, names: names}
}

func (c *Classifier) Rules() Rules {
	return c.rules
}

// Tiers returns every tier the fixture satisfies against table, ascending.
func (c *Classifier) Tiers(item fixture.Fixture, table standings.Table) []Tier {
	homeElite := c.names.BelongsTo(item.HomeTeam, table.EliteGroup)
	awayElite := c.names.BelongsTo(item.AwayTeam, table.EliteGroup)
	homeContender := c.names.BelongsTo(item.HomeTeam, table.Contenders)
	awayContender := c.names.BelongsTo(item.AwayTeam, table.Contenders)

	out := make([]Tier, 0, 2)
	if homeElite && awayElite {
		out = append(out, TierEliteClash)
	}
	if homeContender && awayContender {
		out = append(out, TierContenderClash)
	}
	// A contender outside the elite meeting an elite club.
	if (homeContender && !homeElite && awayElite) || (awayContender && !awayElite && homeElite) {
		out = append(out, TierContenderVsElite)
	}
	if inSlot(item, c.rules.MarqueeA) {
		out = append(out, TierMarqueeSlotA)
	}
	if inSlot(item, c.rules.MarqueeB) {
		out = append(out, TierMarqueeSlotB)
	}
	if table.Leader != "" {
		leader := []string{table.Leader}
		if c.names.BelongsTo(item.HomeTeam, leader) || c.names.BelongsTo(item.AwayTeam, leader) {
			out = append(out, TierLeader)
		}
	}
	return out
}

// Select classifies candidates and returns at most Limit picks ordered by
// strongest tier, then kickoff, then source id. Finished fixtures and
// fixtures matching no tier are skipped.
func (c *Classifier) Select(candidates []fixture.Fixture, table standings.Table) []Pick {
	seen := make(map[string]struct{}, len(candidates))
	picks := make([]Pick, 0, len(candidates))

	for _, item := range candidates {
		if item.Status.IsFinished() {
			continue
		}
		if strings.TrimSpace(item.HomeTeam) == "" || strings.TrimSpace(item.AwayTeam) == "" {
			continue
		}
		if item.SourceID != "" {
			if _, dup := seen[item.SourceID]; dup {
				continue
			}
			seen[item.SourceID] = struct{}{}
		}

		tiers := c.Tiers(item, table)
		if len(tiers) == 0 {
			continue
		}
		picks = append(picks, Pick{Fixture: item, Tiers: tiers})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		ti, tj := picks[i].BestTier(), picks[j].BestTier()
		if ti != tj {
			return ti < tj
		}
		ki, kj := kickoffKey(picks[i].Fixture), kickoffKey(picks[j].Fixture)
		if !ki.Equal(kj) {
			return ki.Before(kj)
		}
		return picks[i].Fixture.SourceID < picks[j].Fixture.SourceID
	})

	if len(picks) > c.rules.Limit {
		picks = picks[:c.rules.Limit]
	}
	return picks
}

var unknownKickoff = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// kickoffKey orders fixtures with unknown kickoff after every known one.
func kickoffKey(item fixture.Fixture) time.Time {
	if item.KickoffAt.IsZero() {
		return unknownKickoff
	}
	return item.KickoffAt
}

func inSlot(item fixture.Fixture, slot Slot) bool {
	if item.VenueDay == "" || item.VenueClock == "" || slot.Clock == "" {
		return false
	}
	return strings.EqualFold(item.VenueDay, slot.Day.String()) && item.VenueClock == slot.Clock
}

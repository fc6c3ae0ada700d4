package selection

import (
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
)

// Tier ranks why a fixture is worth featuring; lower is stronger.
type Tier int

const (
	TierEliteClash       Tier = 1
	TierContenderClash   Tier = 2
	TierContenderVsElite Tier = 3
	TierMarqueeSlotA     Tier = 4
	TierMarqueeSlotB     Tier = 5
	TierLeader           Tier = 6
)

var tierNames = map[Tier]string{
	TierEliteClash:       "elite-clash",
	TierContenderClash:   "contender-clash",
	TierContenderVsElite: "contender-vs-elite",
	TierMarqueeSlotA:     "marquee-slot-a",
	TierMarqueeSlotB:     "marquee-slot-b",
	TierLeader:           "leader",
}

func (t Tier) Name() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Slot is a weekday plus "HH:MM" in the venue timezone.
type Slot struct {
	Day   time.Weekday
	Clock string
}

type Rules struct {
	MarqueeA Slot
	MarqueeB Slot
	// Limit caps the batch size.
	Limit int
}

func DefaultRules() Rules {
	return Rules{
		MarqueeA: Slot{Day: time.Sunday, Clock: "16:30"},
		MarqueeB: Slot{Day: time.Saturday, Clock: "12:30"},
		Limit:    3,
	}
}

// Pick is a fixture together with every tier it satisfied, ascending.
type Pick struct {
	Fixture fixture.Fixture
	Tiers   []Tier
}

// BestTier returns the lowest matched tier, or 0 when none matched.
func (p Pick) BestTier() Tier {
	if len(p.Tiers) == 0 {
		return 0
	}
	best := p.Tiers[0]
	for _, tier := range p.Tiers[1:] {
		if tier < best {
			best = tier
		}
	}
	return best
}

// Batch is the set of featured fixtures published together.
type Batch struct {
	Round int
	Picks []Pick
}

func (b Batch) Empty() bool {
	return len(b.Picks) == 0
}

func (b Batch) IDs() []string {
	out := make([]string, 0, len(b.Picks))
	for _, pick := range b.Picks {
		out = append(out, pick.Fixture.SourceID)
	}
	return out
}

// Rounds lists the distinct round numbers the batch was drawn from.
func (b Batch) Rounds() []int {
	seen := make(map[int]struct{}, 2)
	out := make([]int, 0, 2)
	for _, pick := range b.Picks {
		round := pick.Fixture.Round
		if round <= 0 {
			continue
		}
		if _, ok := seen[round]; ok {
			continue
		}
		seen[round] = struct{}{}
		out = append(out, round)
	}
	return out
}

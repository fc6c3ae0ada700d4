package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/riskibarqy/sports-dashboard/internal/domain/selection"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/domain/teamname"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
)

// rulesDelim keeps dotted alias keys such as "St. Pauli" in one piece.
const rulesDelim = "::"

// Rules holds the editorial tables the classifier and normalizer use.
type Rules struct {
	EliteGroup         []string          `koanf:"elite_group" validate:"min=1,dive,required"`
	Aliases            map[string]string `koanf:"aliases"`
	Seed               SeedRules         `koanf:"seed"`
	MarqueeA           SlotRules         `koanf:"marquee_a"`
	MarqueeB           SlotRules         `koanf:"marquee_b"`
	SelectionLimit     int               `koanf:"selection_limit" validate:"gte=1,lte=10"`
	ContenderCount     int               `koanf:"contender_count" validate:"gte=1,lte=20"`
	YearRolloverMonths int               `koanf:"year_rollover_months" validate:"gte=1,lte=11"`
}

type SeedRules struct {
	Leader     string   `koanf:"leader" validate:"required"`
	Contenders []string `koanf:"contenders" validate:"min=1,dive,required"`
}

type SlotRules struct {
	Day   string `koanf:"day" validate:"required"`
	Clock string `koanf:"clock" validate:"required"`
}

func DefaultRules() Rules {
	classifier := selection.DefaultRules()
	aliases := make(map[string]string, len(teamname.DefaultAliases))
	for alias, canonical := range teamname.DefaultAliases {
		aliases[alias] = canonical
	}
	return Rules{
		EliteGroup: append([]string(nil), standings.DefaultEliteGroup...),
		Aliases:    aliases,
		Seed: SeedRules{
			Leader:     standings.DefaultSeed.Leader,
			Contenders: append([]string(nil), standings.DefaultSeed.Contenders...),
		},
		MarqueeA:           SlotRules{Day: classifier.MarqueeA.Day.String(), Clock: classifier.MarqueeA.Clock},
		MarqueeB:           SlotRules{Day: classifier.MarqueeB.Day.String(), Clock: classifier.MarqueeB.Clock},
		SelectionLimit:     classifier.Limit,
		ContenderCount:     4,
		YearRolloverMonths: 6,
	}
}

// LoadRules overlays the YAML file at path on DefaultRules. Keys missing
// from the file keep their defaults; aliases are merged.
func LoadRules(path string) (Rules, error) {
	k := koanf.New(rulesDelim)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Rules{}, fmt.Errorf("load rules file %s: %w", path, err)
	}

	var overlay Rules
	if err := k.UnmarshalWithConf("", &overlay, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Rules{}, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	rules := DefaultRules().merge(overlay)
	if _, err := rules.MarqueeA.Slot(); err != nil {
		return Rules{}, fmt.Errorf("rules marquee_a: %w", err)
	}
	if _, err := rules.MarqueeB.Slot(); err != nil {
		return Rules{}, fmt.Errorf("rules marquee_b: %w", err)
	}
	if err := validate.Struct(rules); err != nil {
		return Rules{}, fmt.Errorf("validate rules file %s: %w", path, err)
	}
	return rules, nil
}

func (r Rules) merge(overlay Rules) Rules {
	if len(overlay.EliteGroup) > 0 {
		r.EliteGroup = overlay.EliteGroup
	}
	for alias, canonical := range overlay.Aliases {
		r.Aliases[alias] = canonical
	}
	if overlay.Seed.Leader != "" {
		r.Seed.Leader = overlay.Seed.Leader
	}
	if len(overlay.Seed.Contenders) > 0 {
		r.Seed.Contenders = overlay.Seed.Contenders
	}
	if overlay.MarqueeA.Day != "" || overlay.MarqueeA.Clock != "" {
		r.MarqueeA = overlay.MarqueeA
	}
	if overlay.MarqueeB.Day != "" || overlay.MarqueeB.Clock != "" {
		r.MarqueeB = overlay.MarqueeB
	}
	if overlay.SelectionLimit != 0 {
		r.SelectionLimit = overlay.SelectionLimit
	}
	if overlay.ContenderCount != 0 {
		r.ContenderCount = overlay.ContenderCount
	}
	if overlay.YearRolloverMonths != 0 {
		r.YearRolloverMonths = overlay.YearRolloverMonths
	}
	return r
}

// Slot parses the weekday and clock into the classifier's form.
func (s SlotRules) Slot() (selection.Slot, error) {
	day, ok := timezone.ParseWeekday(s.Day)
	if !ok {
		return selection.Slot{}, fmt.Errorf("unknown weekday %q", s.Day)
	}
	clock := timezone.NormalizeClock(s.Clock)
	if clock == "" {
		return selection.Slot{}, fmt.Errorf("unknown clock %q", s.Clock)
	}
	return selection.Slot{Day: day, Clock: clock}, nil
}

// Classifier converts the tables into classifier rules. The slots were
// checked on load, so a parse failure falls back to the default slot.
func (r Rules) Classifier() selection.Rules {
	out := selection.DefaultRules()
	if slot, err := r.MarqueeA.Slot(); err == nil {
		out.MarqueeA = slot
	}
	if slot, err := r.MarqueeB.Slot(); err == nil {
		out.MarqueeB = slot
	}
	if r.SelectionLimit > 0 {
		out.Limit = r.SelectionLimit
	}
	return out
}

func (r Rules) StandingsSeed() standings.Seed {
	return standings.Seed{Leader: strings.TrimSpace(r.Seed.Leader), Contenders: r.Seed.Contenders}
}

// RolloverMonths is the year-inference window as a converter option.
func (r Rules) RolloverMonths() timezone.Option {
	return timezone.WithRolloverMonths(r.YearRolloverMonths)
}

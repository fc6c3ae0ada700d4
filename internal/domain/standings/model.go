package standings

import "sort"

// Row is one line of a league table as a source reports it.
type Row struct {
	Position int
	Team     string
	Points   int
}

// Table is the classification context for one run.
type Table struct {
	Leader     string
	Contenders []string
	EliteGroup []string
	// Fallback is set when the table came from the seed, not a source.
	Fallback bool
}

// Seed is the static table used when no source answers.
type Seed struct {
	Leader     string
	Contenders []string
}

var DefaultSeed = Seed{
	Leader:     "Arsenal",
	Contenders: []string{"Arsenal", "Manchester City", "Liverpool", "Chelsea"},
}

// DefaultEliteGroup is the fixed set of historically prominent clubs.
var DefaultEliteGroup = []string{
	"Arsenal",
	"Chelsea",
	"Liverpool",
	"Manchester City",
	"Manchester United",
	"Tottenham",
}

// FromRows builds a table from ranked rows. ok is false when no row names
// a team, in which case the caller should fall back to a seed.
func FromRows(rows []Row, contenderCount int, elite []string) (Table, bool) {
	ranked := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Team != "" {
			ranked = append(ranked, row)
		}
	}
	if len(ranked) == 0 {
		return Table{}, false
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankKey(ranked[i]) < rankKey(ranked[j])
	})

	if contenderCount < 1 {
		contenderCount = 4
	}
	contenders := make([]string, 0, contenderCount)
	for _, row := range ranked {
		if len(contenders) == contenderCount {
			break
		}
		contenders = append(contenders, row.Team)
	}

	return Table{
		Leader:     ranked[0].Team,
		Contenders: contenders,
		EliteGroup: append([]string(nil), elite...),
	}, true
}

// FromSeed returns the seeded table marked as a fallback.
func FromSeed(seed Seed, elite []string) Table {
	return Table{
		Leader:     seed.Leader,
		Contenders: append([]string(nil), seed.Contenders...),
		EliteGroup: append([]string(nil), elite...),
		Fallback:   true,
	}
}

// rankKey sorts unranked rows after every ranked one.
func rankKey(row Row) int {
	if row.Position <= 0 {
		return int(^uint(0) >> 1)
	}
	return row.Position
}

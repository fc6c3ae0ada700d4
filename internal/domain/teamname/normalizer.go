// Package teamname maps the many spellings providers use for a club onto
// one canonical name and answers group-membership questions on top of it.
package teamname

import (
	"sort"
	"strings"
)

// DefaultAliases covers the short forms seen in provider payloads.
var DefaultAliases = map[string]string{
	"Man City":          "Manchester City",
	"Man Utd":           "Manchester United",
	"Man United":        "Manchester United",
	"Spurs":             "Tottenham",
	"Tottenham Hotspur": "Tottenham",
	"Wolves":            "Wolverhampton",
	"Newcastle United":  "Newcastle",
	"Nott'm Forest":     "Nottingham Forest",
}

var defaultSuffixes = []string{" A.F.C.", " AFC", " F.C.", " FC"}

type Normalizer struct {
	// exact maps a lowercased alias or canonical name to its canonical form.
	exact map[string]string
	// keys holds the entries of exact ordered longest first for the
	// containment fallback.
	keys     []string
	suffixes []string
}

// NewNormalizer builds a normalizer from alias -> canonical pairs. Both
// sides are suffix-stripped, and chained aliases (A -> B, B -> C) resolve
// to their final name, so the table does not depend on map order.
func NewNormalizer(aliases map[string]string) *Normalizer {
	n := &Normalizer{
		exact:    make(map[string]string, len(aliases)*2),
		suffixes: defaultSuffixes,
	}

	sources := make([]string, 0, len(aliases))
	for alias := range aliases {
		sources = append(sources, alias)
	}
	sort.Strings(sources)

	next := make(map[string]string, len(aliases))
	for _, alias := range sources {
		canonical := n.stripSuffixes(collapse(aliases[alias]))
		key := strings.ToLower(n.stripSuffixes(collapse(alias)))
		if canonical == "" || key == "" || key == strings.ToLower(canonical) {
			continue
		}
		next[key] = canonical
	}

	for key := range next {
		canonical := resolve(next, key)
		n.exact[key] = canonical
		n.exact[strings.ToLower(canonical)] = canonical
	}
	for key := range n.exact {
		n.keys = append(n.keys, key)
	}
	sort.Slice(n.keys, func(i, j int) bool {
		if len(n.keys[i]) != len(n.keys[j]) {
			return len(n.keys[i]) > len(n.keys[j])
		}
		return n.keys[i] < n.keys[j]
	})
	return n
}

// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func (n *Normalizer) Normalize(name string) string {
	name = n.stripSuffixes(collapse(name))
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if canonical, ok := n.exact[lower]; ok {
		return canonical
	}
	for _, key := range n.keys {
		if containsWord(lower, key) {
			return n.exact[key]
		}
	}
	return name
}

// BelongsTo reports whether name matches any group member, comparing
// normalized names by case-insensitive containment in either direction.
func (n *Normalizer) BelongsTo(name string, group []string) bool {
	subject := strings.ToLower(n.Normalize(name))
	if subject == "" {
		return false
	}
	for _, member := range group {
		candidate := strings.ToLower(n.Normalize(member))
		if candidate == "" {
			continue
		}
		if strings.Contains(subject, candidate) || strings.Contains(candidate, subject) {
			return true
		}
	}
	return false
}

// NormalizeAll keeps order and drops empty names.
func (n *Normalizer) NormalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if v := n.Normalize(name); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (n *Normalizer) stripSuffixes(name string) string {
	for changed := true; changed; {
		changed = false
		lower := strings.ToLower(name)
		for _, suffix := range n.suffixes {
			if len(name) > len(suffix) && strings.HasSuffix(lower, strings.ToLower(suffix)) {
				name = strings.TrimSpace(name[:len(name)-len(suffix)])
				changed = true
				break
			}
		}
	}
	return name
}

// resolve follows alias chains from key to a name that is not itself an
// alias. A cycle stops at the smallest name on it.
func resolve(next map[string]string, key string) string {
	seen := map[string]bool{key: true}
	canonical := next[key]
	for {
		lower := strings.ToLower(canonical)
		following, ok := next[lower]
		if !ok {
			return canonical
		}
		if seen[lower] {
			return smallestOnCycle(next, lower)
		}
		seen[lower] = true
		canonical = following
	}
}

func smallestOnCycle(next map[string]string, start string) string {
	best := next[start]
	for cur := strings.ToLower(next[start]); cur != start; cur = strings.ToLower(next[cur]) {
		if candidate := next[cur]; candidate < best {
			best = candidate
		}
	}
	return best
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsWord matches key inside s on word boundaries.
func containsWord(s, key string) bool {
	from := 0
	for {
		idx := strings.Index(s[from:], key)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(key)
		if boundary(s, start-1) && boundary(s, end) {
			return true
		}
		from = start + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

// Package broadcast classifies raw broadcaster strings.
package broadcast

import "strings"

// Classification is the outcome for one raw channel string.
type Classification struct {
	Raw      string
	Channel  string
	National bool
}

// Table lists national networks and streaming-only services. A raw string
// naming a streaming service is never national, even when it also contains
// a network name ("ESPN+", "NBC Peacock").
type Table struct {
	National  []string
	Streaming []string
}

var DefaultTable = Table{
	National:  []string{"ESPN", "ABC", "NBC", "TNT"},
	Streaming: []string{"prime video", "amazon prime", "peacock", "nba tv", "nbatv", "nba league pass", "league pass", "espn+", "paramount+"},
}

func (t Table) Classify(raw string) Classification {
	out := Classification{Raw: strings.TrimSpace(raw)}
	if out.Raw == "" {
		return out
	}
	lower := strings.ToLower(out.Raw)
	for _, service := range t.Streaming {
		if strings.Contains(lower, strings.ToLower(service)) {
			return out
		}
	}
	for _, network := range t.National {
		if strings.Contains(lower, strings.ToLower(network)) {
			out.Channel = network
			out.National = true
			return out
		}
	}
	return out
}

package factextract

import (
	"regexp"
	"strings"
)

var (
	grandPrixPattern  = regexp.MustCompile(`\b((?:[A-Z][A-Za-z\-]+\s){1,3}Grand Prix)\b`)
	shortDatePattern  = regexp.MustCompile(`\b(\d{1,2}\.\d{1,2}(?:\s*-\s*\d{1,2}\.\d{1,2})?)\b`)
	monthDayPattern   = regexp.MustCompile(`\b((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}(?:\s*-\s*\d{1,2})?)\b`)
	scorelinePattern  = regexp.MustCompile(`\b(\d{1,3})\s*[-–]\s*(\d{1,3})\b`)
	tournamentPattern = regexp.MustCompile(`\b((?:[A-Z][A-Za-z'\-]+\s){0,3}(?:Open|Masters|Championships|Cup|Finals))\b`)
)

// Broadcasters lists channel names checked in order; longer names first so
// "Sky Sports Main Event" wins over "Sky Sports".
var Broadcasters = []string{
	"Sky Sports Main Event",
	"Sky Sports Premier League",
	"TNT Sports 1",
	"TNT Sports",
	"Sky Sports",
	"Amazon Prime Video",
	"Prime Video",
	"BBC One",
	"BBC",
	"ITV",
	"ESPN",
	"ABC",
	"NBC",
	"Peacock",
	"NBA TV",
	"League Pass",
	"TNT",
}

// Broadcaster returns the first known channel named in text, or "".
func Broadcaster(text string) string {
	return FirstKnown(text, Broadcasters)
}

// FirstKnown returns the entry of names that appears earliest in text
// (case-insensitive); ties go to the longer name.
func FirstKnown(text string, names []string) string {
	lower := strings.ToLower(text)
	best, bestAt := "", -1
	for _, name := range names {
		at := strings.Index(lower, strings.ToLower(name))
		if at < 0 {
			continue
		}
		if bestAt < 0 || at < bestAt || (at == bestAt && len(name) > len(best)) {
			best, bestAt = name, at
		}
	}
	return best
}

// Near narrows text to the sentence-ish window that mentions anchor, so a
// search result listing several games yields facts for the right one.
func Near(text, anchor string, radius int) string {
	if anchor == "" {
		return text
	}
	at := strings.Index(strings.ToLower(text), strings.ToLower(anchor))
	if at < 0 {
		return ""
	}
	start := at - radius
	if start < 0 {
		start = 0
	}
	end := at + len(anchor) + radius
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

func GrandPrix(text string) string {
	return firstGroup(grandPrixPattern, text)
}

func Tournament(text string) string {
	return firstGroup(tournamentPattern, text)
}

// EventDate finds "03.14", "03.14-03.16" or "Mar 14-16" style dates.
func EventDate(text string) string {
	if v := firstGroup(shortDatePattern, text); v != "" {
		return v
	}
	return firstGroup(monthDayPattern, text)
}

func Scoreline(text string) string {
	m := scorelinePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2]
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Facts is the partial structure recovered from one blob of text. Fields
// that could not be found are empty.
type Facts struct {
	Broadcaster string
	GrandPrix   string
	Tournament  string
	Date        string
	Scoreline   string
}

// TextFactExtractor never fails; an unrecognisable text yields empty Facts.
type TextFactExtractor struct {
	broadcasters []string
}

func NewTextFactExtractor(broadcasters []string) *TextFactExtractor {
	if len(broadcasters) == 0 {
		broadcasters = Broadcasters
	}
	return &TextFactExtractor{broadcasters: broadcasters}
}

func (e *TextFactExtractor) Extract(raw string) Facts {
	return Facts{
		Broadcaster: FirstKnown(raw, e.broadcasters),
		GrandPrix:   GrandPrix(raw),
		Tournament:  Tournament(raw),
		Date:        EventDate(raw),
		Scoreline:   Scoreline(raw),
	}
}

package llmsource

import (
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// promptBuilder assembles a search prompt: a date header, numbered asks
// and a JSON example the model is told to mirror.
type promptBuilder struct {
	buf *bytebufferpool.ByteBuffer
}

func newPrompt(today time.Time) *promptBuilder {
	p := &promptBuilder{buf: bytebufferpool.Get()}
	_, _ = p.buf.WriteString("Current Date: ")
	_, _ = p.buf.WriteString(today.Format("2006-01-02"))
	_, _ = p.buf.WriteString("\n\n")
	return p
}

func (p *promptBuilder) line(parts ...string) *promptBuilder {
	for _, part := range parts {
		_, _ = p.buf.WriteString(part)
	}
	_ = p.buf.WriteByte('\n')
	return p
}

func (p *promptBuilder) asks(items ...string) *promptBuilder {
	for i, item := range items {
		_ = p.buf.WriteByte(byte('1' + i))
		_, _ = p.buf.WriteString(". ")
		_, _ = p.buf.WriteString(item)
		_ = p.buf.WriteByte('\n')
	}
	_ = p.buf.WriteByte('\n')
	return p
}

// example appends the expected shape and releases the buffer.
func (p *promptBuilder) example(shape string) string {
	_, _ = p.buf.WriteString("Return JSON only, no commentary:\n")
	_, _ = p.buf.WriteString(strings.TrimSpace(shape))
	_ = p.buf.WriteByte('\n')

	out := p.buf.String()
	bytebufferpool.Put(p.buf)
	p.buf = nil
	return out
}

const footballShape = `{
  "leader": "1st place team",
  "top_4": ["1st", "2nd", "3rd", "4th"],
  "round": "20",
  "fixtures": [
    {
      "home": "Home Team",
      "away": "Away Team",
      "kickoff_day": "Saturday",
      "kickoff_time_uk": "12:30",
      "date": "01.04",
      "broadcaster": "Sky Sports",
      "status": "Scheduled",
      "score": ""
    }
  ]
}`

const basketballShape = `{
  "team": "Team Name",
  "record": "18-16",
  "rank": "8th West",
  "last": {"opp": "Hornets", "result": "W", "score": "132-125", "date": "01.01"},
  "schedule": [
    {"opp": "Thunder", "date": "01.03", "time_pt": "19:30", "location": "home", "channel": "ESPN"}
  ]
}`

const outlookShape = `{
  "tennis": {
    "status": "Active",
    "recent": {"info": "Australian Open Final", "detail": "Melbourne", "result": "W 6-3 6-4", "time": "01.26"},
    "next": {"info": "Rotterdam Open", "detail": "Round of 32", "time": "02.10"}
  },
  "motorsport": {
    "status": "Season 2026",
    "name": "Australian Grand Prix",
    "circuit": "Albert Park, Melbourne",
    "date": "03.14-03.16"
  }
}`

func footballPrompt(today time.Time, competition string) string {
	return newPrompt(today).
		line("Search for the ", competition, " current season:").
		asks(
			"STANDINGS: current 1st place team and the top 4 teams",
			"NEXT MATCHWEEK: every fixture with UK kickoff day, UK kickoff time, date (MM.DD) and UK broadcaster",
			"For matches already played or in play this matchweek include status and score",
		).
		example(footballShape)
}

func basketballPrompt(today time.Time, team string) string {
	return newPrompt(today).
		line("Search for the NBA team ", team, ":").
		asks(
			"STATUS: record (W-L), conference ranking, last game result",
			"SCHEDULE: next 6 games with date (MM.DD), tip-off time (PT), home/away and US TV channel",
		).
		example(basketballShape)
}

func outlookPrompt(today time.Time, competitor, series string) string {
	return newPrompt(today).
		line("Search for:").
		asks(
			strings.ToUpper(competitor)+": current status, most recent result, next tournament or match and its date (MM.DD)",
			series+": next Grand Prix name, circuit and date (MM.DD or MM.DD-MM.DD)",
		).
		example(outlookShape)
}

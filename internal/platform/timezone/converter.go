// Package timezone converts venue-local kickoff strings into the dashboard's
// display timezone.
package timezone

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	displayLayout = "01.02 15:04"
	stampLayout   = "2006-01-02 15:04:05"
	placeholder   = "TBD"
)

var (
	errUnparsedDate  = errors.New("unrecognised date")
	errUnparsedClock = errors.New("unrecognised time")
	errInvalidDate   = errors.New("date out of range")

	fullDatePattern  = regexp.MustCompile(`(\d{4})[-./](\d{1,2})[-./](\d{1,2})`)
	shortDatePattern = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})`)

	zoneSuffixes = []string{"GMT", "BST", "UTC", "EST", "EDT", "PST", "PDT", "KST", "UK", "ET", "PT", "Z"}
)

// Source names the timezone a provider reports local times in.
type Source struct {
	Location *time.Location
	Label    string
}

func LoadSource(name, label string) (Source, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Source{}, fmt.Errorf("load location %s: %w", name, err)
	}
	return Source{Location: loc, Label: label}, nil
}

// Result carries both the converted display strings and the venue-local
// view the classifier's marquee slots are evaluated against.
type Result struct {
	Display     string
	DisplayDate string
	DisplayTime string
	VenueLocal  string
	VenueDay    string
	VenueClock  string
	Instant     time.Time
	Degraded    bool
}

type Option func(*Converter)

// WithClock injects the reference time used for year inference and stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRolloverMonths sets how many months back a yearless date may lie
// before it is assumed to belong to next year.
func WithRolloverMonths(months int) Option {
	return func(c *Converter) {
		if months > 0 && months < 12 {
			c.rolloverMonths = months
		}
	}
}

// WithDegradedHook is called once per input that could not be converted.
func WithDegradedHook(fn func(input string, err error)) Option {
	return func(c *Converter) {
		c.onDegraded = fn
	}
}

type Converter struct {
	display        *time.Location
	now            func() time.Time
	rolloverMonths int
	onDegraded     func(input string, err error)
}

func NewConverter(display *time.Location, opts ...Option) *Converter {
	if display == nil {
		display = time.UTC
	}
	c := &Converter{
		display:        display,
		now:            time.Now,
		rolloverMonths: 6,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Converter) Location() *time.Location {
	return c.display
}

func (c *Converter) Now() time.Time {
	return c.now().In(c.display)
}

// Stamp renders the run time, e.g. "2026-10-19 21:00:00 KST".
func (c *Converter) Stamp() string {
	now := c.Now()
	return now.Format(stampLayout) + " " + now.Format("MST")
}

// Convert never fails: unparseable input comes back verbatim with the
// source label and Degraded set.
func (c *Converter) Convert(date, clock string, src Source) Result {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if instant, ok := parseInstant(date); ok {
		return c.FromInstant(instant, src)
	}

	instant, err := c.resolve(date, clock, src)
	if err != nil {
		return c.degrade(date, clock, src, err)
	}
	return c.FromInstant(instant, src)
}

func (c *Converter) FromInstant(instant time.Time, src Source) Result {
	if instant.IsZero() {
		return c.degrade("", "", src, errUnparsedDate)
	}
	loc := src.Location
	if loc == nil {
		loc = time.UTC
	}

	local := instant.In(loc)
	shown := instant.In(c.display)
	return Result{
		Display:     shown.Format(displayLayout) + " (" + shown.Format("MST") + ")",
		DisplayDate: shown.Format("01.02"),
		DisplayTime: shown.Format("15:04"),
		VenueLocal:  local.Format(displayLayout) + " (" + labelOf(src, local) + ")",
		VenueDay:    local.Weekday().String(),
		VenueClock:  local.Format("15:04"),
		Instant:     instant.UTC(),
	}
}

func (c *Converter) resolve(date, clock string, src Source) (time.Time, error) {
	year, month, day, ok := parseDate(date)
	if !ok {
		return time.Time{}, errUnparsedDate
	}
	hour, minute, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, errUnparsedClock
	}

	if year == 0 {
		now := c.Now()
		year = now.Year()
		if month < int(now.Month())-c.rolloverMonths {
			year++
		}
	}

	loc := src.Location
	if loc == nil {
		loc = time.UTC
	}
	instant := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if instant.Month() != time.Month(month) || instant.Day() != day {
		return time.Time{}, errInvalidDate
	}
	return instant, nil
}

func (c *Converter) degrade(date, clock string, src Source, err error) Result {
	raw := strings.TrimSpace(date + " " + clock)
	if c.onDegraded != nil {
		c.onDegraded(raw, err)
	}
	if raw == "" {
		return Result{Display: placeholder, VenueLocal: placeholder, Degraded: true}
	}

	shown := raw
	if src.Label != "" {
		shown += " (" + src.Label + ")"
	}
	return Result{
		Display:    shown,
		VenueLocal: shown,
		VenueDay:   weekdayIn(date),
		VenueClock: NormalizeClock(clock),
		Degraded:   true,
	}
}

func labelOf(src Source, local time.Time) string {
	if src.Label != "" {
		return src.Label
	}
	return local.Format("MST")
}

func parseInstant(raw string) (time.Time, bool) {
	if !strings.Contains(raw, "T") {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDate(raw string) (year, month, day int, ok bool) {
	if m := fullDatePattern.FindStringSubmatch(raw); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
		return year, month, day, validMonthDay(month, day)
	}
	if m := shortDatePattern.FindStringSubmatch(raw); m != nil {
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		return 0, month, day, validMonthDay(month, day)
	}
	return 0, 0, 0, false
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// ParseClock accepts "16:30", "4:30 PM", "4PM", "16:30 (UK)" and similar.
func ParseClock(raw string) (hour, minute int, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if idx := strings.Index(s, "("); idx >= 0 {
		s = s[:idx]
	}
	s = strings.ReplaceAll(s, " ", "")
	s = stripZoneSuffix(s)

	meridiem := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem, s = "AM", strings.TrimSuffix(s, "AM")
	case strings.HasSuffix(s, "PM"):
		meridiem, s = "PM", strings.TrimSuffix(s, "PM")
	}
	if s == "" {
		return 0, 0, false
	}

	hourPart, minutePart := s, "0"
	if idx := strings.IndexAny(s, ":."); idx >= 0 {
		hourPart, minutePart = s[:idx], s[idx+1:]
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, 0, false
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if meridiem == "PM" && hour != 12 {
			hour += 12
		}
		if meridiem == "AM" && hour == 12 {
			hour = 0
		}
	}
	return hour, minute, true
}

// NormalizeClock renders a parseable clock as "HH:MM", or "" otherwise.
func NormalizeClock(raw string) string {
	hour, minute, ok := ParseClock(raw)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseWeekday finds a weekday name (full or three-letter) inside raw.
func ParseWeekday(raw string) (time.Weekday, bool) {
	lower := strings.ToLower(raw)
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if strings.Contains(lower, name) {
			return day, true
		}
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		short := strings.ToLower(day.String()[:3])
		for _, field := range strings.FieldsFunc(lower, func(r rune) bool { return r < 'a' || r > 'z' }) {
			if field == short {
				return day, true
			}
		}
	}
	return time.Sunday, false
}

func weekdayIn(raw string) string {
	if day, ok := ParseWeekday(raw); ok {
		return day.String()
	}
	return ""
}

func stripZoneSuffix(s string) string {
	for changed := true; changed; {
		changed = false
		for _, zone := range zoneSuffixes {
			if len(s) > len(zone) && strings.HasSuffix(s, zone) {
				s = strings.TrimSuffix(s, zone)
				changed = true
			}
		}
	}
	return s
}

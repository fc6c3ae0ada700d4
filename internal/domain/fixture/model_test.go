package fixture

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestMapProviderStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]Status{
		"":            StatusScheduled,
		"NS":          StatusScheduled,
		"in play":     StatusInProgress,
		"HT":          StatusInProgress,
		"FT":          StatusFinished,
		"Postponed":   StatusFinished,
		"full time":   StatusFinished,
		"weird-state": StatusScheduled,
	}
	for in, want := range cases {
		if got := MapProviderStatus(in); got != want {
			t.Fatalf("MapProviderStatus(%q): want %s got %s", in, want, got)
		}
	}
}

func TestScorelineAndLabel(t *testing.T) {
	t.Parallel()

	f := Fixture{HomeScore: intPtr(2), AwayScore: intPtr(1)}
	if got := f.Scoreline(); got != "2-1" {
		t.Fatalf("unexpected scoreline %q", got)
	}
	if got := (Fixture{HomeScore: intPtr(2)}).Scoreline(); got != "" {
		t.Fatalf("expected empty scoreline with missing away score, got %q", got)
	}
	if got := (Round{Number: 9}).Label(); got != "R9" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := RoundLabel(0); got != "R--" {
		t.Fatalf("unexpected unknown label %q", got)
	}
}

func TestCurrentRound(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		fixtures []Fixture
		want     int
	}{
		{name: "empty", want: 0},
		{
			name: "live round wins",
			fixtures: []Fixture{
				{Round: 8, Status: StatusFinished},
				{Round: 9, Status: StatusInProgress},
				{Round: 10, Status: StatusScheduled, KickoffAt: now.Add(48 * time.Hour)},
			},
			want: 9,
		},
		{
			name: "lowest upcoming round",
			fixtures: []Fixture{
				{Round: 8, Status: StatusFinished},
				{Round: 10, Status: StatusScheduled, KickoffAt: now.Add(96 * time.Hour)},
				{Round: 9, Status: StatusScheduled, KickoffAt: now.Add(2 * time.Hour)},
			},
			want: 9,
		},
		{
			name: "stale unplayed row ignored",
			fixtures: []Fixture{
				{Round: 3, Status: StatusScheduled, KickoffAt: now.Add(-30 * 24 * time.Hour)},
				{Round: 9, Status: StatusScheduled, KickoffAt: now.Add(2 * time.Hour)},
			},
			want: 9,
		},
		{
			name:     "season over falls back to last round",
			fixtures: []Fixture{{Round: 37, Status: StatusFinished}, {Round: 38, Status: StatusFinished}},
			want:     38,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CurrentRound(tc.fixtures, now); got != tc.want {
				t.Fatalf("want %d got %d", tc.want, got)
			}
		})
	}
}

func TestFixture_IsStale(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		item Fixture
		want bool
	}{
		{name: "unknown kickoff", item: Fixture{Status: StatusScheduled}},
		{name: "within bound", item: Fixture{Status: StatusScheduled, KickoffAt: now.Add(-48 * time.Hour)}},
		{name: "past bound", item: Fixture{Status: StatusScheduled, KickoffAt: now.Add(-96 * time.Hour)}, want: true},
		{name: "live never stale", item: Fixture{Status: StatusInProgress, KickoffAt: now.Add(-96 * time.Hour)}},
		{name: "finished never stale", item: Fixture{Status: StatusFinished, KickoffAt: now.Add(-96 * time.Hour)}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.item.IsStale(now); got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

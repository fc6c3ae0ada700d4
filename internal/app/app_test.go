package app

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sports-dashboard/internal/config"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

func baseConfig() config.Config {
	circuit := config.CircuitConfig{Enabled: true, FailureCount: 3, OpenTimeout: 30 * time.Second, HalfOpenMaxReq: 1}
	return config.Config{
		AppEnv:                  config.EnvDev,
		ServiceName:             "sports-dashboard-updater",
		SnapshotPath:            "sports.json",
		DisplayTimezone:         "Asia/Seoul",
		VenueTimezone:           "Europe/London",
		BasketballTimezone:      "America/Los_Angeles",
		GeminiAPIKey:            "key",
		GeminiModel:             "gemini-2.0-flash",
		GeminiBaseURL:           "https://generativelanguage.googleapis.com/v1beta",
		GeminiTimeout:           time.Minute,
		SportMonksBaseURL:       "https://api.sportmonks.com/v3/football",
		SportMonksTimeout:       10 * time.Second,
		SportMonksCircuit:       circuit,
		BallDontLieBaseURL:      "https://api.balldontlie.io",
		BallDontLieTeamID:       10,
		BallDontLieTeamName:     "Golden State Warriors",
		BallDontLieTimeout:      10 * time.Second,
		BraveSearchBaseURL:      "https://api.search.brave.com",
		BraveSearchTimeout:      10 * time.Second,
		ProviderCircuit:         circuit,
		TennisPlayer:            "Carlos Alcaraz",
		MotorsportSeries:        "Formula 1",
		Rules:                   config.DefaultRules(),
		BasketballUpcomingLimit: 6,
	}
}

func TestNew_RequiresGeminiKey(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.GeminiAPIKey = ""
	if _, err := New(cfg, logging.NewNop()); !errors.Is(err, usecase.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestNew_RejectsUnknownTimezone(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.DisplayTimezone = "Mars/Olympus"
	if _, err := New(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected timezone error")
	}
}

func TestNew_SelectsSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edit func(*config.Config)
		want map[string]string
	}{
		{
			name: "search only",
			edit: func(*config.Config) {},
			want: map[string]string{"football": "gemini", "basketball": "gemini", "broadcast": "gemini"},
		},
		{
			name: "all providers",
			edit: func(c *config.Config) {
				c.SportMonksToken = "token"
				c.SportMonksSeasonID = 25583
				c.BallDontLieAPIKey = "key"
				c.BraveSearchToken = "token"
			},
			want: map[string]string{"football": "sportmonks", "basketball": "balldontlie", "broadcast": "bravesearch+gemini"},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := baseConfig()
			tc.edit(&cfg)
			built, err := New(cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("new app: %v", err)
			}
			if built.Snapshot == nil || built.Metrics == nil {
				t.Fatalf("expected wired services")
			}
			for domain, want := range tc.want {
				if got := built.Sources[domain]; got != want {
					t.Fatalf("%s source: want %q got %q", domain, want, got)
				}
			}
		})
	}
}

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/sports-dashboard/external/balldontlie"
	"github.com/riskibarqy/sports-dashboard/external/bravesearch"
	"github.com/riskibarqy/sports-dashboard/external/gemini"
	"github.com/riskibarqy/sports-dashboard/external/sportmonks"
	"github.com/riskibarqy/sports-dashboard/internal/config"
	"github.com/riskibarqy/sports-dashboard/internal/domain/basketball"
	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/domain/search"
	"github.com/riskibarqy/sports-dashboard/internal/domain/selection"
	"github.com/riskibarqy/sports-dashboard/internal/domain/snapshot"
	"github.com/riskibarqy/sports-dashboard/internal/domain/standings"
	"github.com/riskibarqy/sports-dashboard/internal/domain/teamname"
	"github.com/riskibarqy/sports-dashboard/internal/infrastructure/llmsource"
	sourcecache "github.com/riskibarqy/sports-dashboard/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/sports-dashboard/internal/infrastructure/repository/file"
	"github.com/riskibarqy/sports-dashboard/internal/platform/cache"
	"github.com/riskibarqy/sports-dashboard/internal/platform/factextract"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/metrics"
	"github.com/riskibarqy/sports-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/sports-dashboard/internal/platform/timezone"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

// runCacheTTL outlives any single run; entries never need to expire
// mid-run.
const runCacheTTL = time.Hour

const competition = "Premier League"

// venueLabels name venue timezones the way the dashboard prints them.
var venueLabels = map[string]string{
	"Europe/London":       "UK",
	"America/Los_Angeles": "PT",
	"America/New_York":    "ET",
}

// App is one fully wired updater.
type App struct {
	Snapshot *usecase.SnapshotService
	Metrics  *metrics.Recorder
	// Sources names the provider chosen per domain, for the start-up log.
	Sources map[string]string
}

// New wires clients, sources and services from cfg. It fails before any
// network activity when the mandatory credential is missing.
func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY", usecase.ErrMissingCredential)
	}

	display, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("load DISPLAY_TIMEZONE: %w", err)
	}
	venue, err := timezone.LoadSource(cfg.VenueTimezone, venueLabels[cfg.VenueTimezone])
	if err != nil {
		return nil, fmt.Errorf("load VENUE_TIMEZONE: %w", err)
	}
	courtside, err := timezone.LoadSource(cfg.BasketballTimezone, venueLabels[cfg.BasketballTimezone])
	if err != nil {
		return nil, fmt.Errorf("load BASKETBALL_TIMEZONE: %w", err)
	}

	recorder := metrics.NewRecorder()
	timeLogger := logger.Named("timezone")
	converter := timezone.NewConverter(display,
		cfg.Rules.RolloverMonths(),
		timezone.WithDegradedHook(func(input string, err error) {
			timeLogger.Warn("time left unconverted", "input", input, "error", err)
		}),
	)
	extractor := factextract.NewTextFactExtractor(nil)
	names := teamname.NewNormalizer(cfg.Rules.Aliases)
	sources := make(map[string]string, 4)

	llm := gemini.NewClient(gemini.ClientConfig{
		HTTPClient:     newHTTPClient(cfg.GeminiTimeout),
		BaseURL:        cfg.GeminiBaseURL,
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		Timeout:        cfg.GeminiTimeout,
		CallInterval:   cfg.GeminiCallInterval,
		Logger:         logger,
		CircuitBreaker: breakerConfig("gemini", cfg.ProviderCircuit, logger),
	})

	// Broadcast lookups read plain snippets, so a web search answers first
	// and the grounded LLM only when it has nothing.
	lookups := []search.Searcher{}
	if cfg.BraveSearchToken != "" {
		lookups = append(lookups, bravesearch.NewClient(bravesearch.ClientConfig{
			HTTPClient:     newHTTPClient(cfg.BraveSearchTimeout),
			BaseURL:        cfg.BraveSearchBaseURL,
			Token:          cfg.BraveSearchToken,
			Timeout:        cfg.BraveSearchTimeout,
			Logger:         logger,
			CircuitBreaker: breakerConfig("bravesearch", cfg.ProviderCircuit, logger),
		}))
		sources["broadcast"] = "bravesearch+gemini"
	} else {
		sources["broadcast"] = "gemini"
	}
	lookups = append(lookups, llm)
	broadcastSearch := search.NewChain(isRateLimited, lookups...)

	var (
		standingsSrc standings.Source
		fixtureSrc   fixture.Source
	)
	if cfg.SportMonksToken != "" {
		client := sportmonks.NewClient(sportmonks.ClientConfig{
			HTTPClient:     newHTTPClient(cfg.SportMonksTimeout),
			BaseURL:        cfg.SportMonksBaseURL,
			Token:          cfg.SportMonksToken,
			SeasonID:       cfg.SportMonksSeasonID,
			Timeout:        cfg.SportMonksTimeout,
			MaxRetries:     cfg.SportMonksMaxRetries,
			VenueLocation:  venue.Location,
			Logger:         logger,
			CircuitBreaker: breakerConfig("sportmonks", cfg.SportMonksCircuit, logger),
			Now:            converter.Now,
		})
		standingsSrc, fixtureSrc = client, client
		sources["football"] = "sportmonks"
	} else {
		football := llmsource.NewFootball(llmsource.FootballConfig{
			Searcher:    llm,
			Converter:   converter,
			Venue:       venue,
			Competition: competition,
			Names:       names,
			Logger:      logger,
		})
		standingsSrc, fixtureSrc = football, football
		sources["football"] = "gemini"
	}
	standingsSrc = sourcecache.NewStandingsSource(standingsSrc, cache.NewStore[[]standings.Row](runCacheTTL))
	fixtureSrc = sourcecache.NewFixtureSource(fixtureSrc, cache.NewStore[fixture.Round](runCacheTTL))

	var (
		games     basketball.Source
		summaries basketball.SummarySource
	)
	if cfg.BallDontLieAPIKey != "" {
		games = balldontlie.NewClient(balldontlie.ClientConfig{
			HTTPClient:      newHTTPClient(cfg.BallDontLieTimeout),
			BaseURL:         cfg.BallDontLieBaseURL,
			APIKey:          cfg.BallDontLieAPIKey,
			Timeout:         cfg.BallDontLieTimeout,
			RequestInterval: cfg.BallDontLieInterval,
			Logger:          logger,
			CircuitBreaker:  breakerConfig("balldontlie", cfg.ProviderCircuit, logger),
		})
		sources["basketball"] = "balldontlie"
	} else {
		summaries = llmsource.NewBasketball(llm, converter.Now, logger)
		sources["basketball"] = "gemini"
	}
	sources["outlook"] = "gemini"

	selectionSvc := usecase.NewSelectionService(
		standingsSrc,
		fixtureSrc,
		selection.NewClassifier(cfg.Rules.Classifier(), names),
		names,
		converter,
		usecase.SelectionConfig{
			Seed:           cfg.Rules.StandingsSeed(),
			EliteGroup:     cfg.Rules.EliteGroup,
			ContenderCount: cfg.Rules.ContenderCount,
			Venue:          venue,
		},
		recorder,
		logger,
	)
	broadcastSvc := usecase.NewBroadcastService(broadcastSearch, extractor, recorder, logger)
	basketballSvc := usecase.NewBasketballService(games, summaries, converter, usecase.BasketballConfig{
		TeamID:   cfg.BallDontLieTeamID,
		TeamName: cfg.BallDontLieTeamName,
		Upcoming: cfg.BasketballUpcomingLimit,
		Venue:    courtside,
	}, recorder, logger)
	outlookSvc := usecase.NewOutlookService(
		llmsource.NewOutlook(llm, extractor, converter.Now, logger),
		usecase.OutlookConfig{Competitor: cfg.TennisPlayer, Series: cfg.MotorsportSeries},
		converter.Now,
		recorder,
		logger,
	)

	limits := snapshot.DefaultLimits()
	limits.Fixtures = cfg.Rules.SelectionLimit
	limits.Contenders = cfg.Rules.ContenderCount
	limits.Upcoming = cfg.BasketballUpcomingLimit

	snapshotSvc := usecase.NewSnapshotService(
		file.NewSnapshotRepository(cfg.SnapshotPath),
		selectionSvc,
		broadcastSvc,
		basketballSvc,
		outlookSvc,
		snapshot.NewAssembler(limits, snapshot.DefaultDefaults()),
		converter,
		recorder,
		logger,
	)

	return &App{Snapshot: snapshotSvc, Metrics: recorder, Sources: sources}, nil
}

func isRateLimited(err error) bool {
	return errors.Is(err, usecase.ErrRateLimited)
}

func breakerConfig(name string, c config.CircuitConfig, logger *logging.Logger) resilience.CircuitBreakerConfig {
	breakerLogger := logger.Named("circuit")
	return resilience.CircuitBreakerConfig{
		Enabled:          c.Enabled,
		Name:             name,
		FailureThreshold: c.FailureCount,
		OpenTimeout:      c.OpenTimeout,
		HalfOpenMaxReq:   c.HalfOpenMaxReq,
		OnStateChange: func(name string, from, to resilience.CircuitState) {
			breakerLogger.Warn("circuit state changed", "circuit", name, "from", string(from), "to", string(to))
		},
	}
}

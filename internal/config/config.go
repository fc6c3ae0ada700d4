package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
)

// Config stores runtime configuration for one updater run.
type Config struct {
	AppEnv                  string `validate:"oneof=dev stage prod"`
	ServiceName             string `validate:"required"`
	ServiceVersion          string
	SnapshotPath            string `validate:"required"`
	DisplayTimezone         string `validate:"required"`
	VenueTimezone           string `validate:"required"`
	BasketballTimezone      string `validate:"required"`
	GeminiAPIKey            string
	GeminiModel             string `validate:"required"`
	GeminiBaseURL           string `validate:"required,url"`
	GeminiCallInterval      time.Duration
	GeminiTimeout           time.Duration `validate:"gt=0"`
	SportMonksBaseURL       string        `validate:"required,url"`
	SportMonksToken         string
	SportMonksSeasonID      int64         `validate:"gte=0"`
	SportMonksTimeout       time.Duration `validate:"gt=0"`
	SportMonksMaxRetries    int           `validate:"gte=0,lte=5"`
	SportMonksCircuit       CircuitConfig
	BallDontLieBaseURL      string `validate:"required,url"`
	BallDontLieAPIKey       string
	BallDontLieTeamID       int    `validate:"gt=0"`
	BallDontLieTeamName     string `validate:"required"`
	BallDontLieInterval     time.Duration
	BallDontLieTimeout      time.Duration `validate:"gt=0"`
	BraveSearchBaseURL      string        `validate:"required,url"`
	BraveSearchToken        string
	BraveSearchTimeout      time.Duration `validate:"gt=0"`
	ProviderCircuit         CircuitConfig
	TennisPlayer            string `validate:"required"`
	MotorsportSeries        string `validate:"required"`
	MetricsTextfile         string
	UptraceEnabled          bool
	UptraceDSN              string
	UptraceLogsEnabled      bool
	RulesFile               string
	Rules                   Rules
	LogLevel                logging.Level
	BasketballUpcomingLimit int `validate:"gte=1,lte=15"`
}

// CircuitConfig mirrors resilience.CircuitBreakerConfig without the hooks.
type CircuitConfig struct {
	Enabled        bool
	FailureCount   int           `validate:"gte=1"`
	OpenTimeout    time.Duration `validate:"gt=0"`
	HalfOpenMaxReq int           `validate:"gte=1"`
}

// Load reads an optional .env file, then the environment, then the
// optional rules file named by RULES_FILE.
func Load() (Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	geminiCallInterval, err := time.ParseDuration(getEnv("GEMINI_CALL_INTERVAL", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CALL_INTERVAL: %w", err)
	}
	if geminiCallInterval < 0 {
		return Config{}, fmt.Errorf("GEMINI_CALL_INTERVAL must be >= 0")
	}
	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_TIMEOUT: %w", err)
	}

	sportMonksSeasonID, err := strconv.ParseInt(getEnv("SPORTMONKS_SEASON_ID", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_SEASON_ID: %w", err)
	}
	sportMonksToken := strings.TrimSpace(getEnv("SPORTMONKS_TOKEN", ""))
	if sportMonksToken != "" && sportMonksSeasonID <= 0 {
		return Config{}, fmt.Errorf("SPORTMONKS_SEASON_ID is required when SPORTMONKS_TOKEN is set")
	}
	sportMonksTimeout, err := time.ParseDuration(getEnv("SPORTMONKS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_TIMEOUT: %w", err)
	}
	sportMonksMaxRetries, err := getEnvAsInt("SPORTMONKS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTMONKS_MAX_RETRIES: %w", err)
	}
	sportMonksCircuit, err := loadCircuit("SPORTMONKS_CIRCUIT")
	if err != nil {
		return Config{}, err
	}
	providerCircuit, err := loadCircuit("PROVIDER_CIRCUIT")
	if err != nil {
		return Config{}, err
	}

	ballDontLieTeamID, err := getEnvAsInt("BALLDONTLIE_TEAM_ID", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse BALLDONTLIE_TEAM_ID: %w", err)
	}
	ballDontLieInterval, err := time.ParseDuration(getEnv("BALLDONTLIE_REQUEST_INTERVAL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BALLDONTLIE_REQUEST_INTERVAL: %w", err)
	}
	ballDontLieTimeout, err := time.ParseDuration(getEnv("BALLDONTLIE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BALLDONTLIE_TIMEOUT: %w", err)
	}
	basketballUpcoming, err := getEnvAsInt("BASKETBALL_UPCOMING_LIMIT", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse BASKETBALL_UPCOMING_LIMIT: %w", err)
	}

	braveTimeout, err := time.ParseDuration(getEnv("BRAVE_SEARCH_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BRAVE_SEARCH_TIMEOUT: %w", err)
	}

	selectionLimit, err := getEnvAsInt("SELECTION_LIMIT", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SELECTION_LIMIT: %w", err)
	}
	yearRollover, err := getEnvAsInt("YEAR_ROLLOVER_MONTHS", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse YEAR_ROLLOVER_MONTHS: %w", err)
	}
	contenderCount, err := getEnvAsInt("CONTENDER_COUNT", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse CONTENDER_COUNT: %w", err)
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             strings.TrimSpace(getEnv("SERVICE_NAME", "sports-dashboard-updater")),
		ServiceVersion:          strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		SnapshotPath:            strings.TrimSpace(getEnv("SNAPSHOT_PATH", "sports.json")),
		DisplayTimezone:         strings.TrimSpace(getEnv("DISPLAY_TIMEZONE", "Asia/Seoul")),
		VenueTimezone:           strings.TrimSpace(getEnv("VENUE_TIMEZONE", "Europe/London")),
		BasketballTimezone:      strings.TrimSpace(getEnv("BASKETBALL_TIMEZONE", "America/Los_Angeles")),
		GeminiAPIKey:            strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiModel:             strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-2.0-flash")),
		GeminiBaseURL:           strings.TrimSpace(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")),
		GeminiCallInterval:      geminiCallInterval,
		GeminiTimeout:           geminiTimeout,
		SportMonksBaseURL:       strings.TrimSpace(getEnv("SPORTMONKS_BASE_URL", "https://api.sportmonks.com/v3/football")),
		SportMonksToken:         sportMonksToken,
		SportMonksSeasonID:      sportMonksSeasonID,
		SportMonksTimeout:       sportMonksTimeout,
		SportMonksMaxRetries:    sportMonksMaxRetries,
		SportMonksCircuit:       sportMonksCircuit,
		BallDontLieBaseURL:      strings.TrimSpace(getEnv("BALLDONTLIE_BASE_URL", "https://api.balldontlie.io")),
		BallDontLieAPIKey:       strings.TrimSpace(getEnv("BALLDONTLIE_API_KEY", "")),
		BallDontLieTeamID:       ballDontLieTeamID,
		BallDontLieTeamName:     strings.TrimSpace(getEnv("BASKETBALL_TEAM", "Golden State Warriors")),
		BallDontLieInterval:     ballDontLieInterval,
		BallDontLieTimeout:      ballDontLieTimeout,
		BraveSearchBaseURL:      strings.TrimSpace(getEnv("BRAVE_SEARCH_BASE_URL", "https://api.search.brave.com")),
		BraveSearchToken:        strings.TrimSpace(getEnv("BRAVE_SEARCH_TOKEN", "")),
		BraveSearchTimeout:      braveTimeout,
		ProviderCircuit:         providerCircuit,
		TennisPlayer:            strings.TrimSpace(getEnv("TENNIS_PLAYER", "Carlos Alcaraz")),
		MotorsportSeries:        strings.TrimSpace(getEnv("MOTORSPORT_SERIES", "Formula 1")),
		MetricsTextfile:         strings.TrimSpace(getEnv("METRICS_TEXTFILE", "")),
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		UptraceLogsEnabled:      uptraceLogsEnabled,
		RulesFile:               strings.TrimSpace(getEnv("RULES_FILE", "")),
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		BasketballUpcomingLimit: basketballUpcoming,
	}

	rules := DefaultRules()
	if cfg.RulesFile != "" {
		rules, err = LoadRules(cfg.RulesFile)
		if err != nil {
			return Config{}, err
		}
	}
	if selectionLimit > 0 {
		rules.SelectionLimit = selectionLimit
	}
	if yearRollover > 0 {
		rules.YearRolloverMonths = yearRollover
	}
	if contenderCount > 0 {
		rules.ContenderCount = contenderCount
	}
	cfg.Rules = rules

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func loadCircuit(prefix string) (CircuitConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", 3)
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	openTimeout, err := time.ParseDuration(getEnv(prefix+"_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_OPEN_TIMEOUT: %w", prefix, err)
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return CircuitConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	return CircuitConfig{
		Enabled:        enabled,
		FailureCount:   failureCount,
		OpenTimeout:    openTimeout,
		HalfOpenMaxReq: halfOpenMaxReq,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

package sportmonks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/sports-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/sports-dashboard/internal/platform/cache"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

const (
	defaultBaseURL         = "https://api.sportmonks.com/v3/football"
	defaultIncludeStanding = "participant"
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errSportMonksTransient = crerr.New("sportmonks transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	SeasonID   int64
	Timeout    time.Duration
	MaxRetries int
	// VenueLocation is the timezone kickoffs are evaluated in for
	// weekday/clock rules.
	VenueLocation  *time.Location
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Now            func() time.Time
}

// Client reads one season's table and schedule. It implements both
// standings.Source and fixture.Source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	seasonID   int64
	maxRetries int
	venue      *time.Location
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	schedule   *cache.Store[[]fixture.Fixture]
	now        func() time.Time
	backoff    time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	venue := cfg.VenueLocation
	if venue == nil {
		venue = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.Name = "sportmonks"
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		seasonID:   cfg.SeasonID,
		maxRetries: maxInt(cfg.MaxRetries, 0),
		venue:      venue,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(breakerCfg),
		schedule:   cache.NewStore[[]fixture.Fixture](0),
		now:        now,
		backoff:    time.Second,
	}
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, isSportMonksCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "sportmonks circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("%w: decode provider payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		// Header auth keeps the token out of URLs, logs and span attributes.
		req.Header.Set("Authorization", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errSportMonksTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSportMonksTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errSportMonksTransient, resp.StatusCode, sanitizeSensitiveText(abbreviateBody(raw), c.token))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, sanitizeSensitiveText(abbreviateBody(raw), c.token))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "sportmonks request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func isSportMonksCircuitFailure(err error) bool {
	return stderrors.Is(err, errSportMonksTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

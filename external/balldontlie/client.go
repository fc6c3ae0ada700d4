package balldontlie

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

const (
	defaultBaseURL  = "https://api.balldontlie.io"
	defaultPageSize = 100
	maxPages        = 5
)

var errBallDontLieTransient = crerr.New("balldontlie transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	// RequestInterval spaces consecutive calls; the free tier allows
	// five requests per minute.
	RequestInterval time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client implements basketball.Source against the BallDontLie v1 API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RequestInterval > 0 {
		limit = rate.Every(cfg.RequestInterval)
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.Name = "balldontlie"
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(breakerCfg),
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: balldontlie api key is empty", usecase.ErrMissingCredential)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request slot: %w", err)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.execute(ctx, fullURL)
		return reqErr
	}, isTransient)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "balldontlie circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: basketball provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "balldontlie request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode balldontlie payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errBallDontLieTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, crerr.Wrapf(errBallDontLieTransient, "read response body: %v", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, crerr.Wrapf(errBallDontLieTransient, "status=%d body=%s", resp.StatusCode, abbreviate(raw))
	default:
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviate(raw))
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errBallDontLieTransient)
}

func abbreviate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 200 {
		return text
	}
	return text[:200] + "..."
}

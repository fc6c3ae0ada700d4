package bravesearch

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

	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
	"github.com/riskibarqy/sports-dashboard/internal/platform/resilience"
	"github.com/riskibarqy/sports-dashboard/internal/usecase"
)

const (
	defaultBaseURL = "https://api.search.brave.com"
	defaultCount   = 5
)

var errBraveTransient = crerr.New("brave search transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Count          int
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client queries the Brave web search API and implements search.Searcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	count      int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

type searchResponse struct {
	Web struct {
		Results []result `json:"results"`
	} `json:"web"`
}

type result struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ExtraSnippets []string `json:"extra_snippets"`
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
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	count := cfg.Count
	if count <= 0 {
		count = defaultCount
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.Name = "bravesearch"
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		count:      count,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(breakerCfg),
	}
}

// Search returns result titles and snippets joined into one text blob,
// one result per line.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("%w: brave search token is empty", usecase.ErrMissingCredential)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("%w: query is empty", usecase.ErrInvalidInput)
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("count", fmt.Sprintf("%d", c.count))
	fullURL := c.baseURL + "/res/v1/web/search?" + values.Encode()

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.execute(ctx, fullURL)
		return reqErr
	}, isTransient)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		return "", fmt.Errorf("%w: web search is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "brave search request failed", "error", err)
		return "", fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}

	var resp searchResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: decode brave payload: %v", usecase.ErrDependencyUnavailable, err)
	}

	lines := make([]string, 0, len(resp.Web.Results))
	for _, item := range resp.Web.Results {
		parts := []string{strings.TrimSpace(item.Title), strings.TrimSpace(item.Description)}
		parts = append(parts, item.ExtraSnippets...)
		line := strings.TrimSpace(stripTags(strings.Join(parts, " ")))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: no web results for query", usecase.ErrNotFound)
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errBraveTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, crerr.Wrapf(errBraveTransient, "read response body: %v", err)
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, crerr.Wrapf(errBraveTransient, "status=%d", resp.StatusCode)
	default:
		return nil, fmt.Errorf("status=%d", resp.StatusCode)
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errBraveTransient)
}

// stripTags drops the <strong> highlight markup Brave puts in snippets.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

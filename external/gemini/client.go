package gemini

import (
	"bytes"
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
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
	exhaustedCode  = "RESOURCE_EXHAUSTED"
)

var errGeminiTransient = crerr.New("gemini transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	// CallInterval is the minimum gap between two generate calls.
	CallInterval   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the Gemini generative language API. Search runs a prompt
// with Google Search grounding and implements search.Searcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
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
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), "models/")
	if model == "" {
		model = defaultModel
	}

	limit := rate.Inf
	if cfg.CallInterval > 0 {
		limit = rate.Every(cfg.CallInterval)
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.Name = "gemini"
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(breakerCfg),
	}
}

func (c *Client) Model() string {
	return c.model
}

// Search sends query as a grounded prompt and returns the concatenated
// text parts of the first candidate.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	return c.Generate(ctx, query, true)
}

func (c *Client) Generate(ctx context.Context, prompt string, grounded bool) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt is empty", usecase.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for gemini call slot: %w", err)
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if grounded {
		body.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	path := "/models/" + url.PathEscape(c.model) + ":generateContent"
	var resp generateResponse
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &resp); err != nil {
		return "", err
	}

	text := resp.text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned no text (finish=%s)", usecase.ErrDependencyUnavailable, resp.finishReason())
	}
	return text, nil
}

// ListModels pages through every model visible to the key.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	out := make([]Model, 0, 64)
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("pageSize", "100")
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page listModelsResponse
		if err := c.do(ctx, http.MethodGet, "/models", query, nil, &page); err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		out = append(out, page.Models...)

		pageToken = strings.TrimSpace(page.NextPageToken)
		if pageToken == "" {
			return out, nil
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, target any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: gemini api key is empty", usecase.ErrMissingCredential)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.execute(ctx, method, fullURL, payload)
		return reqErr
	}, isTransient)
	switch {
	case err == nil:
	case stderrors.Is(err, usecase.ErrRateLimited):
		c.logger.WarnContext(ctx, "gemini quota exhausted", "model", c.model)
		return err
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		return fmt.Errorf("%w: gemini is temporarily unavailable", usecase.ErrDependencyUnavailable)
	default:
		c.logger.WarnContext(ctx, "gemini request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode gemini payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

func (c *Client) execute(ctx context.Context, method, fullURL string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errGeminiTransient, "send request: %s", sanitize(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, crerr.Wrapf(errGeminiTransient, "read response body: %v", err)
	}

	switch {
	case isRateLimited(resp.StatusCode, raw):
		return nil, fmt.Errorf("%w: status=%d", usecase.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, crerr.Wrapf(errGeminiTransient, "status=%d body=%s", resp.StatusCode, abbreviate(raw))
	default:
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviate(raw))
	}
}

// isRateLimited matches the quota signature: HTTP 429 or a
// RESOURCE_EXHAUSTED status in an error body.
func isRateLimited(status int, body []byte) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	if status >= 200 && status < 300 {
		return false
	}
	return bytes.Contains(body, []byte(exhaustedCode))
}

func isTransient(err error) bool {
	return crerr.Is(err, errGeminiTransient)
}

func sanitize(value, key string) string {
	if key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func abbreviate(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultBaseURL is the public gateway.
	DefaultBaseURL = "https://arweave.net"
	// DefaultTimeout is the per-request timeout, retries included.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the delay before the first retry.
	DefaultRetryDelay = time.Second
)

// Config is the struct form of the client options.
type Config struct {
	// BaseURL is the node URL. Required.
	BaseURL string
	// HTTPClient performs the individual attempts. Defaults to a client
	// over a pooled transport.
	HTTPClient *http.Client
	// MaxRetries is the number of retries after the first attempt.
	// Negative values disable retries.
	MaxRetries int
	// RetryDelay is the delay before the first retry.
	RetryDelay time.Duration
	// RetryOn lists the status codes that are retried.
	RetryOn []int
	// Timeout bounds a whole call, retries included.
	Timeout time.Duration
	// Logger receives retry diagnostics.
	Logger *slog.Logger
}

// Client is the HTTP client for a node. It is safe for concurrent use.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryClient *retryablehttp.Client
	retry       *RetryConfig
}

// LeveledSlog adapts a slog.Logger to retryablehttp.LeveledLogger.
type LeveledSlog struct {
	inner *slog.Logger
}

// Error logs at WARN level, since failed attempts are retried.
func (l LeveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l LeveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

// NewClient creates a client from an explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	retry := DefaultRetryConfig()
	if cfg.MaxRetries != 0 {
		retry.MaxRetries = max(cfg.MaxRetries, 0)
	}
	if cfg.RetryDelay > 0 {
		retry.BaseDelay = cfg.RetryDelay
	}
	if len(cfg.RetryOn) > 0 {
		retry.RetryableOn = retryableOn(cfg.RetryOn)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("subsystem", "node-client")

	inner := cfg.HTTPClient
	if inner == nil {
		inner = &http.Client{Transport: cleanhttp.DefaultPooledTransport()}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = inner
	rc.RetryMax = retry.MaxRetries
	rc.RetryWaitMin = retry.BaseDelay
	rc.RetryWaitMax = retry.MaxDelay
	rc.CheckRetry = retry.checkRetry
	rc.Backoff = retry.backoff
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: logger})

	httpClient := rc.StandardClient()
	httpClient.Timeout = timeout

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		retryClient: rc,
		retry:       retry,
	}, nil
}

// Option configures the API client.
type Option func(*Config)

// WithRetries sets the number of retries. Zero disables retries.
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries == 0 {
			retries = -1
		}
		c.MaxRetries = retries
	}
}

// WithRetryDelay sets the delay before the first retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

// WithRetryOn sets the retried status codes.
func WithRetryOn(codes []int) Option {
	return func(c *Config) {
		c.RetryOn = codes
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets the client used for individual attempts.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets the logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// New creates a client for the node at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := Config{BaseURL: baseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// BaseURL returns the node URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the retrying client used for calls.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// response is a fully read node response.
type response struct {
	StatusCode int
	Body       []byte
}

// send performs a request and returns the response for any status below
// 400. Higher statuses become *APIError; transport failures become
// *NetworkError; context errors are returned as is.
func (c *Client) send(ctx context.Context, method, path string, body any) (*response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &NetworkError{Err: err, URL: url}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: url}
	}
	return &response{StatusCode: resp.StatusCode, Body: data}, nil
}

// Do sends a JSON request and decodes a JSON response into result, which
// may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// getText fetches a plain-text endpoint and returns the trimmed body.
func (c *Client) getText(ctx context.Context, path string) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

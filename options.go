package arweave

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nestdotland/arweave-go/internal/api"
)

const (
	defaultBaseURL          = api.DefaultBaseURL
	defaultWaitTimeout      = 10 * time.Minute
	defaultMinConfirmations = 1
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	retryOn    []int
	logger     *slog.Logger

	// Polling configuration
	pollingInitialInterval   time.Duration
	pollingMaxBackoff        time.Duration
	pollingBackoffMultiplier float64
	pollingJitterFactor      float64
}

// waitConfig holds configuration for waiting on confirmations.
type waitConfig struct {
	minConfirmations int64
	timeout          time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// WaitOption configures WaitForConfirmation.
type WaitOption func(*waitConfig)

// WithBaseURL sets the node URL.
// Default: https://arweave.net
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets the HTTP client that performs each attempt.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout of a single HTTP request, retries included.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for node calls. Zero disables
// retries.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithPollingInitialInterval sets the initial confirmation polling interval.
// Default: 2 seconds
func WithPollingInitialInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingInitialInterval = interval
	}
}

// WithPollingMaxBackoff sets the maximum polling interval. While the status
// of a transaction does not change, the interval grows up to this value.
// Default: 30 seconds
func WithPollingMaxBackoff(maxBackoff time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingMaxBackoff = maxBackoff
	}
}

// WithPollingBackoffMultiplier sets the polling backoff multiplier.
// Default: 1.5
func WithPollingBackoffMultiplier(multiplier float64) Option {
	return func(c *clientConfig) {
		c.pollingBackoffMultiplier = multiplier
	}
}

// WithPollingJitterFactor sets the fraction of the interval added as random
// jitter.
// Default: 0.3 (30%)
func WithPollingJitterFactor(factor float64) Option {
	return func(c *clientConfig) {
		c.pollingJitterFactor = factor
	}
}

// WithMinConfirmations sets how many confirmations WaitForConfirmation
// waits for.
// Default: 1
func WithMinConfirmations(n int64) WaitOption {
	return func(c *waitConfig) {
		c.minConfirmations = n
	}
}

// WithWaitTimeout bounds WaitForConfirmation.
// Default: 10 minutes
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

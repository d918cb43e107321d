package arweave

import (
	"net/http"
	"testing"
	"time"
)

func TestDefaultConstants(t *testing.T) {
	if defaultBaseURL != "https://arweave.net" {
		t.Errorf("defaultBaseURL = %s, want https://arweave.net", defaultBaseURL)
	}
	if defaultWaitTimeout != 10*time.Minute {
		t.Errorf("defaultWaitTimeout = %v, want 10m", defaultWaitTimeout)
	}
	if defaultMinConfirmations != 1 {
		t.Errorf("defaultMinConfirmations = %d, want 1", defaultMinConfirmations)
	}
}

func TestWithBaseURL(t *testing.T) {
	cfg := &clientConfig{}
	WithBaseURL("http://localhost:1984")(cfg)
	if cfg.baseURL != "http://localhost:1984" {
		t.Errorf("baseURL = %s, want http://localhost:1984", cfg.baseURL)
	}
}

func TestWithHTTPClient(t *testing.T) {
	cfg := &clientConfig{}
	customClient := &http.Client{Timeout: 99 * time.Second}
	WithHTTPClient(customClient)(cfg)
	if cfg.httpClient != customClient {
		t.Error("httpClient was not set")
	}
}

func TestWithTimeout(t *testing.T) {
	cfg := &clientConfig{}
	WithTimeout(45 * time.Second)(cfg)
	if cfg.timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.timeout)
	}
}

func TestWithRetries(t *testing.T) {
	tests := []int{0, 1, 5}

	for _, n := range tests {
		cfg := &clientConfig{retries: -1}
		WithRetries(n)(cfg)
		if cfg.retries != n {
			t.Errorf("retries = %d, want %d", cfg.retries, n)
		}
	}
}

func TestWithRetryOn(t *testing.T) {
	cfg := &clientConfig{}
	codes := []int{500, 503}
	WithRetryOn(codes)(cfg)
	if len(cfg.retryOn) != 2 || cfg.retryOn[0] != 500 || cfg.retryOn[1] != 503 {
		t.Errorf("retryOn = %v, want %v", cfg.retryOn, codes)
	}
}

func TestPollingOptions(t *testing.T) {
	cfg := &clientConfig{}
	WithPollingInitialInterval(time.Second)(cfg)
	WithPollingMaxBackoff(time.Minute)(cfg)
	WithPollingBackoffMultiplier(2.5)(cfg)
	WithPollingJitterFactor(0.1)(cfg)

	if cfg.pollingInitialInterval != time.Second {
		t.Errorf("pollingInitialInterval = %v", cfg.pollingInitialInterval)
	}
	if cfg.pollingMaxBackoff != time.Minute {
		t.Errorf("pollingMaxBackoff = %v", cfg.pollingMaxBackoff)
	}
	if cfg.pollingBackoffMultiplier != 2.5 {
		t.Errorf("pollingBackoffMultiplier = %v", cfg.pollingBackoffMultiplier)
	}
	if cfg.pollingJitterFactor != 0.1 {
		t.Errorf("pollingJitterFactor = %v", cfg.pollingJitterFactor)
	}
}

func TestWaitOptions(t *testing.T) {
	cfg := &waitConfig{}
	WithMinConfirmations(6)(cfg)
	WithWaitTimeout(time.Hour)(cfg)

	if cfg.minConfirmations != 6 {
		t.Errorf("minConfirmations = %d, want 6", cfg.minConfirmations)
	}
	if cfg.timeout != time.Hour {
		t.Errorf("timeout = %v, want 1h", cfg.timeout)
	}
}

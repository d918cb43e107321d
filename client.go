package arweave

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/nestdotland/arweave-go/internal/api"
	"github.com/nestdotland/arweave-go/internal/poll"
	"github.com/nestdotland/arweave-go/winston"
)

// NetworkInfo is the node's view of the network.
type NetworkInfo = api.NetworkInfo

// TransactionStatus is the confirmation status of a transaction.
type TransactionStatus = api.TransactionStatus

// Client talks to a single node. It is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	polling   poll.Options
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithRetries(cfg.retries),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(cfg.logger))
	}

	return api.New(cfg.baseURL, apiOpts...)
}

// New creates a client. No request is made until the first call.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		retries: api.DefaultMaxRetries,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		polling: poll.Options{
			Interval:    cfg.pollingInitialInterval,
			MaxInterval: cfg.pollingMaxBackoff,
			Multiplier:  cfg.pollingBackoffMultiplier,
			Jitter:      pollingJitter(cfg.pollingJitterFactor),
		},
	}, nil
}

func pollingJitter(f float64) float64 {
	if f == 0 {
		return poll.JitterFactor
	}
	return f
}

// BaseURL returns the node URL.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// NetworkInfo returns the node's view of the network.
func (c *Client) NetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	return c.apiClient.GetNetworkInfo(ctx)
}

// Peers lists the peers known to the node.
func (c *Client) Peers(ctx context.Context) ([]string, error) {
	return c.apiClient.GetPeers(ctx)
}

// Price returns the reward for storing size bytes. A non-empty target adds
// the fee for a wallet the network has not seen.
func (c *Client) Price(ctx context.Context, size int64, target string) (winston.Winston, error) {
	return c.apiClient.GetPrice(ctx, size, target)
}

// Balance returns the balance of address.
func (c *Client) Balance(ctx context.Context, address string) (winston.Winston, error) {
	return c.apiClient.GetBalance(ctx, address)
}

// LastTransactionID returns the ID of the last transaction sent from
// address, or "" for a wallet that has never sent one.
func (c *Client) LastTransactionID(ctx context.Context, address string) (string, error) {
	return c.apiClient.GetLastTransactionID(ctx, address)
}

// Transaction fetches a transaction by ID. A transaction that is still
// pending is reported as an *APIError with status 202.
func (c *Client) Transaction(ctx context.Context, id string) (*Transaction, error) {
	tx, err := c.apiClient.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return transactionFromAPI(tx), nil
}

// TransactionStatus returns the confirmation status of a transaction.
// Unknown transactions fail with an error matching ErrTransactionNotFound.
func (c *Client) TransactionStatus(ctx context.Context, id string) (*TransactionStatus, error) {
	return c.apiClient.GetTransactionStatus(ctx, id)
}

// PrepareTransaction sets the anchor and reward of tx from the node and
// signs it with w. Fields that are already set are kept.
func (c *Client) PrepareTransaction(ctx context.Context, w *Wallet, tx *Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}

	if tx.LastTx == "" {
		anchor, err := c.LastTransactionID(ctx, w.Address())
		if err != nil {
			return fmt.Errorf("fetch anchor: %w", err)
		}
		tx.LastTx = anchor
	}

	if tx.Reward.IsZero() {
		size := int64(0)
		if tx.DataSize != "" {
			n, err := strconv.ParseInt(tx.DataSize, 10, 64)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid data size %q", tx.DataSize)
			}
			size = n
		}
		reward, err := c.Price(ctx, size, tx.Target)
		if err != nil {
			return fmt.Errorf("fetch price: %w", err)
		}
		tx.Reward = reward
	}

	return w.SignTransaction(tx)
}

// SubmitTransaction verifies tx locally and posts it to the node.
func (c *Client) SubmitTransaction(ctx context.Context, tx *Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	if err := tx.Verify(); err != nil {
		return err
	}
	return c.apiClient.SubmitTransaction(ctx, tx.toAPI())
}

// WaitForConfirmation polls the status of a transaction until it has the
// requested number of confirmations. Polling backs off while the status is
// unchanged. Lookups that fail, including 404 for a transaction that has
// not propagated yet, are retried until the wait times out.
func (c *Client) WaitForConfirmation(ctx context.Context, id string, opts ...WaitOption) (*TransactionStatus, error) {
	cfg := &waitConfig{
		minConfirmations: defaultMinConfirmations,
		timeout:          defaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	status, err := poll.Until(waitCtx, c.polling, func(ctx context.Context) (poll.Observation[*TransactionStatus], error) {
		status, err := c.TransactionStatus(ctx, id)
		if err != nil {
			return poll.Observation[*TransactionStatus]{}, err
		}
		if status.Pending {
			return poll.Observation[*TransactionStatus]{Value: status, State: "pending"}, nil
		}
		return poll.Observation[*TransactionStatus]{
			Value: status,
			State: strconv.FormatInt(status.NumberOfConfirmations, 10),
			Done:  status.NumberOfConfirmations >= cfg.minConfirmations,
		}, nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Operation: "wait for confirmation of " + id, Timeout: cfg.timeout}
		}
		return nil, err
	}
	return status, nil
}

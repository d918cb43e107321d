package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nestdotland/arweave-go/internal/apierrors"
	"github.com/nestdotland/arweave-go/winston"
)

// GetNetworkInfo retrieves the node's view of the network.
func (c *Client) GetNetworkInfo(ctx context.Context) (*NetworkInfo, error) {
	var result NetworkInfo
	if err := c.Do(ctx, http.MethodGet, "/info", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetPeers lists the peers known to the node as host:port strings.
func (c *Client) GetPeers(ctx context.Context) ([]string, error) {
	var result []string
	if err := c.Do(ctx, http.MethodGet, "/peers", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPrice returns the reward for storing size bytes. A non-empty target
// includes the fee for creating that wallet.
func (c *Client) GetPrice(ctx context.Context, size int64, target string) (winston.Winston, error) {
	if size < 0 {
		return winston.Winston{}, fmt.Errorf("negative data size %d", size)
	}
	path := "/price/" + strconv.FormatInt(size, 10)
	if target != "" {
		path += "/" + url.PathEscape(target)
	}
	return c.getWinston(ctx, path)
}

// GetBalance returns the balance of a wallet address. Unknown addresses
// have a zero balance.
func (c *Client) GetBalance(ctx context.Context, address string) (winston.Winston, error) {
	path := fmt.Sprintf("/wallet/%s/balance", url.PathEscape(address))
	w, err := c.getWinston(ctx, path)
	return w, apierrors.WithResourceType(err, apierrors.ResourceWallet)
}

// GetLastTransactionID returns the ID of the last transaction sent from a
// wallet, used as the anchor for the next one. Empty for a fresh wallet.
func (c *Client) GetLastTransactionID(ctx context.Context, address string) (string, error) {
	path := fmt.Sprintf("/wallet/%s/last_tx", url.PathEscape(address))
	id, err := c.getText(ctx, path)
	if err != nil {
		return "", apierrors.WithResourceType(err, apierrors.ResourceWallet)
	}
	return id, nil
}

// GetTransaction retrieves a transaction by ID.
func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	path := fmt.Sprintf("/tx/%s", url.PathEscape(id))
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	// 202 means the node holds the transaction in its mempool and the body is
	// the text "Pending" rather than JSON.
	if resp.StatusCode == http.StatusAccepted {
		return nil, &APIError{
			StatusCode:   http.StatusAccepted,
			Message:      "transaction is pending",
			ResourceType: apierrors.ResourceTransaction,
		}
	}

	var result Transaction
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// GetTransactionStatus retrieves the confirmation status of a transaction.
// 404 is returned as an error matching ErrTransactionNotFound.
func (c *Client) GetTransactionStatus(ctx context.Context, id string) (*TransactionStatus, error) {
	path := fmt.Sprintf("/tx/%s/status", url.PathEscape(id))
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, apierrors.WithResourceType(err, apierrors.ResourceTransaction)
	}
	if resp.StatusCode == http.StatusAccepted {
		return &TransactionStatus{Pending: true}, nil
	}

	var result TransactionStatus
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// SubmitTransaction posts a signed transaction. A node rejection matches
// ErrInvalidTransaction.
func (c *Client) SubmitTransaction(ctx context.Context, tx *Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	_, err := c.send(ctx, http.MethodPost, "/tx", tx)
	return apierrors.WithResourceType(err, apierrors.ResourceTransaction)
}

func (c *Client) getWinston(ctx context.Context, path string) (winston.Winston, error) {
	text, err := c.getText(ctx, path)
	if err != nil {
		return winston.Winston{}, err
	}
	w, err := winston.Decode(text)
	if err != nil {
		return winston.Winston{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return w, nil
}

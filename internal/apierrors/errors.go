// Package apierrors provides shared error types for the arweave client.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrNotFound is matched by every 404 response.
	ErrNotFound = errors.New("not found")

	// ErrTransactionNotFound is returned when the node does not know a transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransaction is returned when the node rejects a submitted transaction.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrRateLimited is returned when the node rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidImportData is returned when imported wallet data is invalid.
	ErrInvalidImportData = errors.New("invalid import data")

	// ErrDecryptionFailed is returned when wallet decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("signature verification failed")
)

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceTransaction indicates the error relates to a transaction.
	ResourceTransaction ResourceType = "transaction"
	// ResourceWallet indicates the error relates to a wallet address.
	ResourceWallet ResourceType = "wallet"
)

// APIError represents an HTTP error from a node.
type APIError struct {
	StatusCode   int
	Message      string
	RequestID    string
	ResourceType ResourceType
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// ArweaveError implements the ArweaveError interface.
func (e *APIError) ArweaveError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 400:
		return target == ErrInvalidTransaction && e.ResourceType == ResourceTransaction
	case 404:
		if target == ErrNotFound {
			return true
		}
		return target == ErrTransactionNotFound && e.ResourceType == ResourceTransaction
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// WithResourceType returns a copy of the error with the resource type set.
// If the error is not an *APIError, it is returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:   apiErr.StatusCode,
			Message:      apiErr.Message,
			RequestID:    apiErr.RequestID,
			ResourceType: rt,
		}
	}
	return err
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ArweaveError implements the ArweaveError interface.
func (e *NetworkError) ArweaveError() {}

// SignatureVerificationError indicates a signature or transaction ID that
// does not match its owner.
type SignatureVerificationError struct {
	Message    string
	IDMismatch bool
}

func (e *SignatureVerificationError) Error() string {
	if e.IDMismatch {
		return fmt.Sprintf("transaction id mismatch: %s", e.Message)
	}
	return fmt.Sprintf("signature verification failed: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
// All signature verification failures match ErrSignatureInvalid.
func (e *SignatureVerificationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// ArweaveError implements the ArweaveError interface.
func (e *SignatureVerificationError) ArweaveError() {}

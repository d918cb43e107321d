package arweave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nestdotland/arweave-go/internal/apierrors"
	"github.com/nestdotland/arweave-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrNotFound is matched by every 404 response from a node.
	ErrNotFound = apierrors.ErrNotFound

	// ErrTransactionNotFound is returned when the node does not know a transaction.
	ErrTransactionNotFound = apierrors.ErrTransactionNotFound

	// ErrInvalidTransaction is returned when the node rejects a submitted transaction.
	ErrInvalidTransaction = apierrors.ErrInvalidTransaction

	// ErrRateLimited is returned when the node rate limit is exceeded.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrInvalidImportData is returned when exported wallet data is invalid.
	ErrInvalidImportData = apierrors.ErrInvalidImportData

	// ErrDecryptionFailed is returned when an exported wallet cannot be
	// decrypted, which includes a wrong password.
	ErrDecryptionFailed = apierrors.ErrDecryptionFailed

	// ErrSignatureInvalid is returned when a transaction signature or ID does
	// not match its owner.
	ErrSignatureInvalid = apierrors.ErrSignatureInvalid

	// ErrUnsupportedFormat is returned for transaction formats other than 2.
	ErrUnsupportedFormat = errors.New("unsupported transaction format")

	// ErrMissingDataRoot is returned when a transaction carries data but no
	// data root.
	ErrMissingDataRoot = errors.New("missing data root")

	// ErrInvalidKey is returned when a JWK cannot be turned into a key.
	ErrInvalidKey = errors.New("invalid key")
)

// ArweaveError is implemented by all typed errors of this package.
type ArweaveError interface {
	error
	ArweaveError() // marker method
}

// APIError represents an HTTP error from a node.
type APIError = apierrors.APIError

// NetworkError represents a network-level failure.
type NetworkError = apierrors.NetworkError

// SignatureVerificationError indicates a transaction whose ID or signature
// does not match its owner.
type SignatureVerificationError = apierrors.SignatureVerificationError

// TimeoutError represents an operation that exceeded its deadline.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %v", e.Operation, e.Timeout)
}

// Is implements errors.Is so that timeouts also match context.DeadlineExceeded.
func (e *TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// ArweaveError implements the ArweaveError interface.
func (e *TimeoutError) ArweaveError() {}

// DecryptionError represents a failure to decrypt an exported wallet.
type DecryptionError struct {
	Stage   string // "decode", "aes", "jwk"
	Message string
	Err     error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decryption failed at %s: %s", e.Stage, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// ArweaveError implements the ArweaveError interface.
func (e *DecryptionError) ArweaveError() {}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidImportData
}

// ArweaveError implements the ArweaveError interface.
func (e *ValidationError) ArweaveError() {}

// wrapKeyError converts key assembly failures from the crypto layer.
func wrapKeyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, crypto.ErrInvalidKeyType) ||
		errors.Is(err, crypto.ErrMalformedEncoding) ||
		errors.Is(err, crypto.ErrInvalidKeyComponents) {
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return err
}

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/nestdotland/arweave-go/internal/apierrors"
)

// Re-exported so callers of this package need not import apierrors.
var (
	ErrNotFound            = apierrors.ErrNotFound
	ErrTransactionNotFound = apierrors.ErrTransactionNotFound
	ErrInvalidTransaction  = apierrors.ErrInvalidTransaction
	ErrRateLimited         = apierrors.ErrRateLimited
)

// APIError is an HTTP error from a node.
type APIError = apierrors.APIError

// NetworkError is a network-level failure.
type NetworkError = apierrors.NetworkError

// maxErrorBody bounds how much of an error response is kept as the message.
const maxErrorBody = 4096

// parseErrorResponse builds an APIError from a non-2xx response. Nodes
// answer with either a JSON {"error": ...} object or a plain-text reason.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var errResp struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}

	if err := json.Unmarshal(body, &errResp); err == nil && (errResp.Error != "" || errResp.Message != "") {
		msg := errResp.Error
		if msg == "" {
			msg = errResp.Message
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			RequestID:  errResp.RequestID,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}

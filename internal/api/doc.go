// Package api provides HTTP client functionality for communicating with a
// ledger node. It handles request/response serialization and automatic
// retries with exponential backoff for transient failures.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Both require a node base URL. Nodes are unauthenticated; no credentials
// are sent.
//
// # Retry Behavior
//
// Requests go through go-retryablehttp over a pooled cleanhttp transport.
// By default, requests are retried up to 3 times for these HTTP status codes:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 500 Internal Server Error
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// The retry delay doubles with each attempt (1s, 2s, 4s, ...) with 20%
// jitter, unless the node sends Retry-After. After the last attempt the
// final response is returned to the caller as an [APIError].
//
// # Error Handling
//
// Non-2xx responses become [APIError] values tagged with the resource they
// concern, so errors.Is works against the sentinels:
//
//	if errors.Is(err, api.ErrTransactionNotFound) {
//	    // Handle unknown transaction
//	}
//
// Transport failures are reported as [NetworkError]. Context cancellation
// is returned unwrapped.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api

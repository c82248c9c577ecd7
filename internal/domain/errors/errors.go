// Package errors defines the error types the gateway produces from failed
// remote calls. Every HTTP error response is parsed into an APIError so the
// operation layer can always surface a single human-readable message.
package errors

import (
	"fmt"
	"net/http"
	"sort"

	"beacon/internal/errors"
)

// Sentinel errors for unrecoverable auth failure.
var (
	// ErrNoRefreshToken means an authenticated call failed with 401/403 and
	// no refresh token is held, so renewal cannot even be attempted.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrSessionExpired means the refresh call itself was rejected; the
	// session has been cleared and the caller must re-authenticate.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// APIError is an HTTP error response from the remote server. The body is
// either a single "detail" string or a map of field name to messages; both
// shapes are captured here.
type APIError struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
	Raw        string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return msg
	}

	return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Message extracts a single human-readable string, preferring the detail
// string, else the first message of the first field key. Field keys are
// visited in sorted order so the choice is deterministic.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}

	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if msgs := e.Fields[key]; len(msgs) > 0 && msgs[0] != "" {
			return msgs[0]
		}
	}

	return ""
}

// IsAuthFailure reports whether the response status indicates an
// authorization failure that the refresh state machine should handle.
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// AsAPIError unwraps err into an *APIError if one is in its tree.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout indicates the upstream did not answer within the
	// configured timeout.
	ErrTimeout = errors.New("upstream request timed out")

	// ErrUpstreamDown indicates a connection failure or a 5xx response.
	ErrUpstreamDown = errors.New("upstream registry unavailable")

	// ErrRateLimited indicates the upstream answered 429.
	ErrRateLimited = errors.New("rate limited by upstream")

	// ErrDecode indicates the response body was not the expected JSON.
	ErrDecode = errors.New("malformed upstream payload")
)

// HTTPError represents a non-2xx response outside the sentinel cases.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

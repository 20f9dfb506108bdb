package clients

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ConnectionError indicates the Radarr host could not be reached at all.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("radarr unreachable at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError indicates the configured timeout elapsed before Radarr
// responded.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("radarr request to %s timed out: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// AuthError indicates Radarr rejected the API key (401 or 403).
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("radarr rejected credentials (status %d)", e.StatusCode)
}

// UpstreamError indicates any other non-success response from Radarr.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("radarr returned unexpected status %d", e.StatusCode)
}

// classifyTransportError maps a transport-level failure to the timeout or
// connection error type so callers can tell "host down" apart from "too
// slow".
func classifyTransportError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: url, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: url, Err: err}
	}
	return &ConnectionError{URL: url, Err: err}
}

// classifyStatus maps a non-success HTTP status to the auth or upstream
// error type. Returns nil for success statuses.
func classifyStatus(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &AuthError{StatusCode: statusCode}
	default:
		return &UpstreamError{StatusCode: statusCode}
	}
}

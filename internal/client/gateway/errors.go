package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means the backend rejected the credential (401/403).
	// It is terminal: retrying with the same token will not help.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable covers transport failures, timeouts and 502/503/504.
	// Callers may retry later.
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("not found")
	ErrBadRequest  = errors.New("bad request")
)

// StatusError is returned for every non-2xx response. It matches the
// sentinel for its status class via errors.Is and keeps the raw body so
// callers can show backend validation messages.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Is(target error) bool {
	return classify(e.StatusCode) == target
}

func classify(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		return nil
	}
}

// transportError wraps a failure to reach the backend at all.
type transportError struct {
	err error
}

func (e *transportError) Error() string   { return "transport: " + e.err.Error() }
func (e *transportError) Unwrap() []error { return []error{ErrUnavailable, e.err} }

// IsRetryable reports whether err is worth retrying later, i.e. the backend
// could not be reached rather than having answered "no".
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

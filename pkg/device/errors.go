package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMalformedRecord indicates a hub record is missing a required field
	// or carries a field of the wrong type
	ErrMalformedRecord = errors.New("malformed record")

	// ErrCapabilityUnsupported indicates the device does not accept writes
	// for an attribute
	ErrCapabilityUnsupported = errors.New("capability not supported")

	// ErrValidation indicates a value outside the attribute's domain
	ErrValidation = errors.New("validation error")

	// ErrMissingPrecondition indicates a bound needed to validate a value was
	// not reported by the device
	ErrMissingPrecondition = fmt.Errorf("%w: missing precondition", ErrValidation)

	// ErrNotFound indicates the hub has no entity with the requested id
	ErrNotFound = errors.New("not found")

	// ErrHTTPFailure indicates a non-2xx response or a transport fault
	ErrHTTPFailure = errors.New("hub request failed")

	// ErrTypeMismatch indicates the hub reports a different device kind
	// than the one requested
	ErrTypeMismatch = errors.New("device type mismatch")

	// ErrNoTransport indicates an entity that was not decoded through a
	// transport and therefore cannot talk to the hub
	ErrNoTransport = errors.New("entity has no transport")
)

// HTTPError is returned by transports for non-2xx hub responses.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap makes every HTTPError match ErrHTTPFailure.
func (e *HTTPError) Unwrap() error {
	return ErrHTTPFailure
}

// StatusCode returns the hub status code carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// NotFound translates a 404 from a direct id lookup into ErrNotFound.
// Any other error is returned unchanged.
func NotFound(err error, what, id string) error {
	if StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
	}
	return err
}

// Error codes reported to clients of the bridges.
const (
	CodeNotFound              = "not_found"
	CodeValidation            = "validation_error"
	CodeCapabilityUnsupported = "capability_unsupported"
	CodeTypeMismatch          = "type_mismatch"
	CodeTimeout               = "timeout"
	CodeMalformedRecord       = "malformed_record"
	CodeHubError              = "hub_error"
	CodeInternal              = "internal_error"
)

// ErrorCode names the failure class of err, checking the most specific
// sentinel first.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrCapabilityUnsupported):
		return CodeCapabilityUnsupported
	case errors.Is(err, ErrTypeMismatch):
		return CodeTypeMismatch
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, ErrMalformedRecord):
		return CodeMalformedRecord
	case errors.Is(err, ErrHTTPFailure):
		return CodeHubError
	default:
		return CodeInternal
	}
}

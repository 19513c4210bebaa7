package device

import (
	"context"
	"encoding/json"
)

// Transport performs authenticated calls against the hub API. Paths are
// relative to the API root (e.g. "/devices/{id}"). Bodies are marshalled as
// JSON; a nil body sends no content.
//
// Failed calls return an error wrapping ErrHTTPFailure; non-2xx responses
// carry an *HTTPError with the status code. Implementations must be safe for
// concurrent use since every entity decoded through a transport shares it.
type Transport interface {
	// Get returns the decoded-later response body
	Get(ctx context.Context, path string) (json.RawMessage, error)

	// Patch sends body and returns the raw response, which callers ignore
	Patch(ctx context.Context, path string, body any) ([]byte, error)

	// Post returns the response body, or nil if the hub sent no content
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)

	// Delete returns the response body, or nil if the hub sent no content
	Delete(ctx context.Context, path string, body any) (json.RawMessage, error)
}

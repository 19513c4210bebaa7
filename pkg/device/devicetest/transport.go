// Package devicetest provides an in-memory device.Transport for tests.
package devicetest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/urmzd/dirigera/pkg/device"
)

// Call is one request seen by Transport. Body is the JSON encoding of the
// body argument, or nil when none was sent.
type Call struct {
	Method string
	Path   string
	Body   []byte
}

// Transport records every call and answers from canned responses. Paths
// with no canned response answer 404 for GET and empty success otherwise.
type Transport struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]json.RawMessage
	failures  map[string]error
}

// New creates an empty Transport.
func New() *Transport {
	return &Transport{
		responses: make(map[string]json.RawMessage),
		failures:  make(map[string]error),
	}
}

// Reply makes method+path answer with body.
func (t *Transport) Reply(method, path, body string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[method+" "+path] = json.RawMessage(body)
}

// Fail makes method+path return err.
func (t *Transport) Fail(method, path string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[method+" "+path] = err
}

// Calls returns a copy of every call made so far.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// CallsFor returns the calls made with method.
func (t *Transport) CallsFor(method string) []Call {
	var out []Call
	for _, c := range t.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps canned responses.
func (t *Transport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = nil
}

func (t *Transport) Get(ctx context.Context, path string) (json.RawMessage, error) {
	body, ok, err := t.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &device.HTTPError{Method: http.MethodGet, Path: path, StatusCode: http.StatusNotFound}
	}
	return body, nil
}

func (t *Transport) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	resp, _, err := t.do(http.MethodPatch, path, body)
	return resp, err
}

func (t *Transport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	resp, _, err := t.do(http.MethodPost, path, body)
	return resp, err
}

func (t *Transport) Delete(ctx context.Context, path string, body any) (json.RawMessage, error) {
	resp, _, err := t.do(http.MethodDelete, path, body)
	return resp, err
}

func (t *Transport) do(method, path string, body any) (json.RawMessage, bool, error) {
	var encoded []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, false, err
		}
		encoded = b
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, Call{Method: method, Path: path, Body: encoded})
	key := method + " " + path
	if err, ok := t.failures[key]; ok {
		return nil, false, err
	}
	resp, ok := t.responses[key]
	return resp, ok, nil
}

// Package hub talks to the hub over HTTPS and WebSocket and exposes typed
// lookups of its devices, scenes and rooms.
package hub

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/dirigera/pkg/device"
)

const (
	// DefaultPort is the hub's HTTPS and WebSocket port.
	DefaultPort = 8443

	// DefaultAPIVersion is the path prefix of the hub API.
	DefaultAPIVersion = "v1"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 1024
)

// Client is the HTTPS device.Transport. It is safe for concurrent use.
type Client struct {
	address    string
	port       int
	apiVersion string
	token      string
	timeout    time.Duration
	certPEM    []byte
	tlsConfig  *tls.Config
	httpClient *http.Client
	baseURL    string
	wsURL      string
}

// Option configures a Client.
type Option func(*Client)

// WithPort overrides DefaultPort.
func WithPort(port int) Option {
	return func(c *Client) { c.port = port }
}

// WithAPIVersion overrides DefaultAPIVersion.
func WithAPIVersion(v string) Option {
	return func(c *Client) { c.apiVersion = v }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithCertificate pins the hub's PEM-encoded certificate. Without it the
// client accepts any certificate the hub presents.
func WithCertificate(pem []byte) Option {
	return func(c *Client) { c.certPEM = pem }
}

// WithHTTPClient replaces the HTTP client entirely. TLS settings derived
// from WithCertificate are not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client for the hub at address using a bearer token
// obtained by pairing.
func NewClient(address, token string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errors.New("hub address is required")
	}
	if token == "" {
		return nil, errors.New("hub token is required")
	}
	c := &Client{
		address:    address,
		port:       DefaultPort,
		apiVersion: DefaultAPIVersion,
		token:      token,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	tlsCfg, err := TLSConfig(c.certPEM)
	if err != nil {
		return nil, err
	}
	c.tlsConfig = tlsCfg
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(tlsCfg, c.timeout)
	}

	host := net.JoinHostPort(address, strconv.Itoa(c.port))
	c.baseURL = "https://" + host + "/" + c.apiVersion
	c.wsURL = "wss://" + host + "/" + c.apiVersion
	return c, nil
}

// BaseURL returns the API root, e.g. https://192.168.1.10:8443/v1.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Address returns the hub's host name or IP.
func (c *Client) Address() string {
	return c.address
}

// NewHTTPClient returns an HTTP client using tlsCfg with the given
// per-request timeout.
func NewHTTPClient(tlsCfg *tls.Config, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg
	return &http.Client{Transport: transport, Timeout: timeout}
}

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Delete(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", device.ErrHTTPFailure, method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(method, path, "error", start)
		log.Debug().Err(err).Str("request_id", requestID).Str("method", method).Str("path", path).Msg("hub request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", device.ErrHTTPFailure, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	observe(method, path, strconv.Itoa(resp.StatusCode), start)
	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("hub request")
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s response: %w", device.ErrHTTPFailure, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &device.HTTPError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: msg}
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

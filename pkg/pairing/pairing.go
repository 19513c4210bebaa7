// Package pairing obtains a bearer token from a hub through its PKCE
// authorization flow. The user confirms the pairing by pressing the action
// button on the hub between Begin and Complete.
package pairing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/hub"
)

const audience = "homesmart.local"

// ErrNotConfirmed is returned by Wait when the action button was not
// pressed before the context ended.
var ErrNotConfirmed = errors.New("pairing not confirmed on the hub")

// Session is an authorization in progress.
type Session struct {
	Code     string
	Verifier string
}

// Pairer runs the pairing flow against one hub.
type Pairer struct {
	address    string
	port       int
	apiVersion string
	name       string
	httpClient *http.Client
	oauth      oauth2.Config
}

// Option configures a Pairer.
type Option func(*Pairer)

// WithPort overrides hub.DefaultPort.
func WithPort(port int) Option {
	return func(p *Pairer) { p.port = port }
}

// WithName sets the client name the hub records for the token. It defaults
// to the host name.
func WithName(name string) Option {
	return func(p *Pairer) { p.name = name }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Pairer) { p.httpClient = hc }
}

// New creates a Pairer for the hub at address.
func New(address string, opts ...Option) (*Pairer, error) {
	if address == "" {
		return nil, errors.New("hub address is required")
	}
	p := &Pairer{
		address:    address,
		port:       hub.DefaultPort,
		apiVersion: hub.DefaultAPIVersion,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.name == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("client name: %w", err)
		}
		p.name = host
	}
	if p.httpClient == nil {
		tlsCfg, err := hub.TLSConfig(nil)
		if err != nil {
			return nil, err
		}
		p.httpClient = hub.NewHTTPClient(tlsCfg, hub.DefaultTimeout)
	}

	base := "https://" + net.JoinHostPort(address, strconv.Itoa(p.port)) + "/" + p.apiVersion
	p.oauth = oauth2.Config{
		Endpoint: oauth2.Endpoint{
			AuthURL:   base + "/oauth/authorize",
			TokenURL:  base + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return p, nil
}

// Name returns the client name sent with the token request.
func (p *Pairer) Name() string {
	return p.name
}

type authorizeResponse struct {
	Code string `json:"code"`
}

// Begin sends a fresh code challenge and returns the session to complete
// once the action button has been pressed.
func (p *Pairer) Begin(ctx context.Context) (*Session, error) {
	verifier := oauth2.GenerateVerifier()
	q := url.Values{
		"audience":              {audience},
		"response_type":         {"code"},
		"code_challenge":        {oauth2.S256ChallengeFromVerifier(verifier)},
		"code_challenge_method": {"S256"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.oauth.Endpoint.AuthURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authorize: %w", device.ErrHTTPFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: authorize: %w", device.ErrHTTPFailure, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: authorize: %w", device.ErrHTTPFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &device.HTTPError{
			Method:     http.MethodGet,
			Path:       "/oauth/authorize",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	var ar authorizeResponse
	if err := json.Unmarshal(data, &ar); err != nil || ar.Code == "" {
		return nil, fmt.Errorf("authorize: %w: no code in response", device.ErrMalformedRecord)
	}
	log.Debug().Str("hub", p.address).Msg("pairing challenge accepted")
	return &Session{Code: ar.Code, Verifier: verifier}, nil
}

// Complete exchanges the session's code for a bearer token. It fails with
// a *oauth2.RetrieveError while the action button has not been pressed.
func (p *Pairer) Complete(ctx context.Context, s *Session) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := p.oauth.Exchange(ctx, s.Code,
		oauth2.VerifierOption(s.Verifier),
		oauth2.SetAuthURLParam("name", p.name),
	)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	return tok.AccessToken, nil
}

// Wait calls Complete every interval until the hub issues a token or ctx
// ends. Rejections from the token endpoint are retried; transport failures
// are not.
func (p *Pairer) Wait(ctx context.Context, s *Session, interval time.Duration) (string, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		token, err := p.Complete(ctx, s)
		if err == nil {
			return token, nil
		}
		var re *oauth2.RetrieveError
		if !errors.As(err, &re) {
			return "", err
		}
		log.Debug().Str("hub", p.address).Int("status", statusOf(re)).Msg("waiting for action button")

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrNotConfirmed, ctx.Err())
		case <-ticker.C:
		}
	}
}

func statusOf(re *oauth2.RetrieveError) int {
	if re.Response == nil {
		return 0
	}
	return re.Response.StatusCode
}

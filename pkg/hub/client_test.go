package hub

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"io"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/dirigera/pkg/device"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	c, err := NewClient(host, "secret-token", append([]Option{WithPort(port)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresAddressAndToken(t *testing.T) {
	_, err := NewClient("", "tok")
	assert.Error(t, err)

	_, err = NewClient("192.168.1.10", "")
	assert.Error(t, err)

	c, err := NewClient("192.168.1.10", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://192.168.1.10:8443/v1", c.BaseURL())
	assert.Equal(t, "192.168.1.10", c.Address())
}

func TestNewClientRejectsBadCertificate(t *testing.T) {
	_, err := NewClient("192.168.1.10", "tok", WithCertificate([]byte("not pem")))
	assert.Error(t, err)
}

func TestClientGetSendsBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotRequestID string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"a"}]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	body, err := c.Get(t.Context(), "/devices")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "/v1/devices", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.JSONEq(t, `[{"id":"a"}]`, string(body))
}

func TestClientPatchEncodesBody(t *testing.T) {
	var gotMethod, gotType string
	var gotBody []map[string]any
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	resp, err := c.Patch(t.Context(), "/devices/abc", device.AttributesPatch(map[string]any{"light_level": 80}))
	require.NoError(t, err)

	assert.Nil(t, resp)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "application/json", gotType)
	require.Len(t, gotBody, 1)
	assert.Equal(t, map[string]any{"lightLevel": float64(80)}, gotBody[0]["attributes"])
}

func TestClientMapsErrorStatus(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such device", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Get(t.Context(), "/devices/missing")
	require.Error(t, err)

	assert.ErrorIs(t, err, device.ErrHTTPFailure)
	assert.Equal(t, http.StatusNotFound, device.StatusCode(err))

	var httpErr *device.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "no such device", httpErr.Body)
	assert.Equal(t, http.MethodGet, httpErr.Method)
}

func TestClientUnreachableHub(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.Get(t.Context(), "/devices")
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrHTTPFailure)
	assert.Equal(t, 0, device.StatusCode(err))
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "/devices")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPinnedCertificateMatches(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	pinned := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	c := newTestClient(t, srv, WithCertificate(pinned))

	_, err := c.Get(t.Context(), "/hub/status")
	assert.NoError(t, err)
}

func TestPinnedCertificateMismatch(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, WithCertificate(selfSignedPEM(t)))

	_, err := c.Get(t.Context(), "/hub/status")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCertificateMismatch)
	assert.ErrorIs(t, err, device.ErrHTTPFailure)
}

func TestResourceLabel(t *testing.T) {
	cases := []struct{ path, want string }{
		{"/devices", "devices"},
		{"/devices/abc", "devices"},
		{"/scenes/x/trigger", "scenes"},
		{"/hub/status", "hub"},
		{"/oauth/token?code=1", "oauth"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, resource(tc.path), tc.path)
	}
}

func TestListenDeliversEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}
	auth := make(chan string, 1)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{
			"id": "evt-1",
			"type": "deviceStateChanged",
			"data": {"id": "light-1", "type": "light", "attributes": {"lightLevel": 80, "isOn": true}}
		}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	events := make(chan Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.Listen(ctx, func(ev Event) { events <- ev })
	}()

	select {
	case ev := <-events:
		assert.Equal(t, EventDeviceStateChanged, ev.Type)
		assert.Equal(t, "light-1", ev.EntityID())
		assert.Equal(t, map[string]any{"light_level": float64(80), "is_on": true}, ev.Attributes())
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
	assert.Equal(t, "Bearer secret-token", <-auth)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

func TestListenRejectedHandshake(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	err := c.Listen(t.Context(), func(Event) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrHTTPFailure)
	assert.Equal(t, http.StatusUnauthorized, device.StatusCode(err))
}

func TestEventWithoutAttributes(t *testing.T) {
	ev := Event{Type: EventPing}
	assert.Empty(t, ev.EntityID())
	assert.Empty(t, ev.Attributes())
}

func selfSignedPEM(t *testing.T) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(42),
		Subject:      pkix.Name{CommonName: "other-hub"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

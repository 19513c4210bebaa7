package mqttbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/device/devicetest"
	"github.com/urmzd/dirigera/pkg/hub"
)

const lightRecord = `{"id":"light-1","type":"light","deviceType":"light","isReachable":true,
	"attributes":{"customName":"Hall","isOn":true,"lightLevel":10},
	"capabilities":{"canSend":[],"canReceive":["customName","isOn","lightLevel"]}}`

type message struct {
	topic   string
	payload []byte
	retain  bool
}

type fakeClient struct {
	mu       sync.Mutex
	handlers map[string]Handler
	out      chan message
}

func newFakeClient() *fakeClient {
	return &fakeClient{handlers: make(map[string]Handler), out: make(chan message, 32)}
}

func (f *fakeClient) Subscribe(topic string, h Handler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = h
	return nil
}

func (f *fakeClient) Publish(topic string, payload []byte, retain bool) error {
	f.out <- message{topic: topic, payload: payload, retain: retain}
	return nil
}

func (f *fakeClient) handler(topic string) Handler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handlers[topic]
}

func (f *fakeClient) next(t *testing.T) message {
	t.Helper()
	select {
	case m := <-f.out:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
		return message{}
	}
}

type idleSource struct{}

func (idleSource) Listen(ctx context.Context, _ func(hub.Event)) error {
	<-ctx.Done()
	return ctx.Err()
}

func newBridge(t *testing.T) (*Bridge, *fakeClient, *devicetest.Transport, *hub.Broker) {
	t.Helper()
	tr := devicetest.New()
	tr.Reply(http.MethodGet, "/devices/light-1", lightRecord)
	broker := hub.NewBroker(idleSource{})
	fc := newFakeClient()
	return New(fc, hub.New(tr), broker, "home/"), fc, tr, broker
}

func TestBridgeForwardsEvents(t *testing.T) {
	b, fc, _, broker := newBridge(t)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	status := fc.next(t)
	assert.Equal(t, "home/bridge/status", status.topic)
	assert.Equal(t, StatusOnline, string(status.payload))
	assert.True(t, status.retain)
	assert.NotNil(t, fc.handler("home/+/set"))

	broker.Publish(hub.Event{
		ID:   "e1",
		Type: hub.EventDeviceStateChanged,
		Data: json.RawMessage(`{"id":"light-1","attributes":{"lightLevel":80}}`),
	})
	ev := fc.next(t)
	assert.Equal(t, "home/light-1/event", ev.topic)
	assert.False(t, ev.retain)
	assert.JSONEq(t, `{"id":"e1","type":"deviceStateChanged","entity_id":"light-1","attributes":{"light_level":80}}`, string(ev.payload))

	broker.Publish(hub.Event{ID: "p", Type: hub.EventPing})
	broker.Publish(hub.Event{ID: "e2", Type: hub.EventSceneUpdated})
	ev = fc.next(t)
	assert.Equal(t, "home/hub/event", ev.topic)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	offline := fc.next(t)
	assert.Equal(t, StatusOffline, string(offline.payload))
	assert.True(t, offline.retain)
}

func TestBridgeAppliesCommand(t *testing.T) {
	b, fc, tr, _ := newBridge(t)

	b.handleCommand(t.Context(), "home/light-1/set", []byte(`{"is_on":false}`))

	state := fc.next(t)
	assert.Equal(t, "home/light-1/state", state.topic)
	assert.True(t, state.retain)

	var got struct {
		Kind   string `json:"kind"`
		Device struct {
			Attributes map[string]any `json:"attributes"`
		} `json:"device"`
	}
	require.NoError(t, json.Unmarshal(state.payload, &got))
	assert.Equal(t, "light", got.Kind)
	assert.Equal(t, false, got.Device.Attributes["is_on"])

	patches := tr.CallsFor(http.MethodPatch)
	require.Len(t, patches, 1)
	assert.JSONEq(t, `[{"attributes":{"isOn":false}}]`, string(patches[0].Body))
}

func TestBridgeRejectsCommands(t *testing.T) {
	cases := []struct {
		name    string
		topic   string
		payload string
		code    string
	}{
		{"not json", "home/light-1/set", `on`, "validation_error"},
		{"out of range", "home/light-1/set", `{"light_level":101}`, "validation_error"},
		{"not accepted", "home/light-1/set", `{"fan_mode":"auto"}`, "capability_unsupported"},
		{"unknown device", "home/light-9/set", `{"is_on":true}`, "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, fc, tr, _ := newBridge(t)

			b.handleCommand(t.Context(), tc.topic, []byte(tc.payload))

			msg := fc.next(t)
			assert.Equal(t, tc.topic[:len(tc.topic)-len("set")]+"error", msg.topic)
			var body errorMessage
			require.NoError(t, json.Unmarshal(msg.payload, &body))
			assert.Equal(t, tc.code, body.Error)
			assert.Empty(t, tr.CallsFor(http.MethodPatch))
		})
	}
}

type mismatchedDevices struct{}

func (mismatchedDevices) Device(_ context.Context, id string) (device.Device, error) {
	return nil, fmt.Errorf("device %s: %w", id, device.ErrTypeMismatch)
}

func TestBridgeReportsTypeMismatch(t *testing.T) {
	fc := newFakeClient()
	b := New(fc, mismatchedDevices{}, nil, "home")

	b.handleCommand(t.Context(), "home/light-1/set", []byte(`{"is_on":true}`))

	msg := fc.next(t)
	assert.Equal(t, "home/light-1/error", msg.topic)
	var body errorMessage
	require.NoError(t, json.Unmarshal(msg.payload, &body))
	assert.Equal(t, "type_mismatch", body.Error)
}

func TestDeviceID(t *testing.T) {
	b := New(newFakeClient(), nil, nil, "home")

	assert.Equal(t, "abc", b.deviceID("home/abc/set"))
	assert.Empty(t, b.deviceID("home/abc/state"))
	assert.Empty(t, b.deviceID("home//set"))
	assert.Empty(t, b.deviceID("home/a/b/set"))
	assert.Empty(t, b.deviceID("other/abc/set"))
}

package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/wire"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 5 * time.Second
)

// Event types the hub is known to emit.
const (
	EventDeviceStateChanged = "deviceStateChanged"
	EventDeviceAdded        = "deviceAdded"
	EventDeviceRemoved      = "deviceRemoved"
	EventSceneUpdated       = "sceneUpdated"
	EventPing               = "ping"
)

// Event is one message from the hub's event stream.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Source      string          `json:"source,omitempty"`
	Time        *time.Time      `json:"time,omitempty"`
	SpecVersion string          `json:"specversion,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// eventData is the part of an event payload that names the entity.
type eventData struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	DeviceType string         `json:"deviceType"`
	Attributes map[string]any `json:"attributes"`
}

// EntityID returns the id of the device or scene the event concerns, or ""
// if the payload carries none.
func (e Event) EntityID() string {
	var d eventData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return ""
	}
	return d.ID
}

// Attributes returns the changed attributes with snake_case keys. It is
// empty for events that carry none.
func (e Event) Attributes() map[string]any {
	var d eventData
	if err := json.Unmarshal(e.Data, &d); err != nil || d.Attributes == nil {
		return map[string]any{}
	}
	return wire.SnakeKeys(d.Attributes).(map[string]any)
}

// EventSource delivers hub events until its context ends.
type EventSource interface {
	Listen(ctx context.Context, handle func(Event)) error
}

// Listen streams hub events to handle until ctx is cancelled or the
// connection fails. handle runs on the reader goroutine and must not block
// for long. Returns ctx.Err() after a cancellation.
func (c *Client) Listen(ctx context.Context, handle func(Event)) error {
	dialer := websocket.Dialer{
		TLSClientConfig:  c.tlsConfig,
		HandshakeTimeout: c.timeout,
	}
	header := http.Header{"Authorization": {"Bearer " + c.token}}

	conn, resp, err := dialer.DialContext(ctx, c.wsURL, header)
	if err != nil {
		if resp != nil {
			return &device.HTTPError{Method: http.MethodGet, Path: "/", StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("%w: dial event stream: %w", device.ErrHTTPFailure, err)
	}
	defer conn.Close()
	log.Info().Str("hub", c.address).Msg("event stream connected")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		deadline := time.Now().Add(writeWait)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = conn.Close()
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return fmt.Errorf("%w: ping event stream: %w", device.ErrHTTPFailure, err)
				}
			}
		}
	})

	g.Go(func() error {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: read event stream: %w", device.ErrHTTPFailure, err)
			}
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				log.Warn().Err(err).Msg("discarding undecodable hub event")
				continue
			}
			eventCounter.WithLabelValues(ev.Type).Inc()
			log.Debug().Str("type", ev.Type).Str("id", ev.ID).Msg("hub event")
			handle(ev)
		}
	})

	err = g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

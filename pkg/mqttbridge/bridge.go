// Package mqttbridge mirrors hub events onto an MQTT broker and applies
// device commands received from it.
//
// Topics, under a configurable prefix:
//
//	<prefix>/bridge/status   online|offline (retained, also the will)
//	<prefix>/<id>/event      every hub event about entity <id>
//	<prefix>/<id>/set        device.Command JSON to apply to device <id>
//	<prefix>/<id>/state      device record after a successful command (retained)
//	<prefix>/<id>/error      why a command was rejected
package mqttbridge

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/dirigera/pkg/device"
	"github.com/urmzd/dirigera/pkg/hub"
)

// Bridge status payloads
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// hubEntity names the topic for events that carry no entity id.
const hubEntity = "hub"

// Client is the MQTT surface the bridge needs. *PahoClient satisfies it.
type Client interface {
	Subscribe(topic string, h Handler) error
	Publish(topic string, payload []byte, retain bool) error
}

// Devices looks devices up by id. *hub.Hub satisfies it.
type Devices interface {
	Device(ctx context.Context, id string) (device.Device, error)
}

// Subscriber hands out event subscriptions. *hub.Broker satisfies it.
type Subscriber interface {
	Subscribe() <-chan hub.Event
	Unsubscribe(ch <-chan hub.Event)
}

// StatusTopic returns the bridge's status topic under prefix.
func StatusTopic(prefix string) string {
	return prefix + "/bridge/status"
}

// Bridge connects the hub to an MQTT broker.
type Bridge struct {
	client  Client
	devices Devices
	events  Subscriber
	prefix  string
}

// New creates a Bridge publishing under prefix.
func New(client Client, devices Devices, events Subscriber, prefix string) *Bridge {
	return &Bridge{
		client:  client,
		devices: devices,
		events:  events,
		prefix:  strings.TrimSuffix(prefix, "/"),
	}
}

// Run forwards events and serves commands until ctx ends or the event
// subscription closes. It marks the bridge offline on the way out.
func (b *Bridge) Run(ctx context.Context) error {
	events := b.events.Subscribe()
	defer b.events.Unsubscribe(events)

	err := b.client.Subscribe(b.prefix+"/+/set", func(topic string, payload []byte) {
		b.handleCommand(ctx, topic, payload)
	})
	if err != nil {
		return err
	}
	if err := b.client.Publish(StatusTopic(b.prefix), []byte(StatusOnline), true); err != nil {
		return err
	}
	log.Info().Str("prefix", b.prefix).Msg("mqtt bridge running")

	defer b.publish("status", StatusTopic(b.prefix), []byte(StatusOffline), true)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			b.forward(ev)
		}
	}
}

type eventMessage struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	Attributes map[string]any `json:"attributes"`
	Time       *time.Time     `json:"time,omitempty"`
}

func (b *Bridge) forward(ev hub.Event) {
	if ev.Type == hub.EventPing {
		return
	}
	entity := ev.EntityID()
	if entity == "" {
		entity = hubEntity
	}
	payload, err := json.Marshal(eventMessage{
		ID:         ev.ID,
		Type:       ev.Type,
		EntityID:   entity,
		Attributes: ev.Attributes(),
		Time:       ev.Time,
	})
	if err != nil {
		log.Error().Err(err).Str("event", ev.ID).Msg("encode event")
		return
	}
	b.publish("event", b.topic(entity, "event"), payload, false)
}

type stateMessage struct {
	Kind   device.Kind   `json:"kind"`
	Device device.Device `json:"device"`
}

type errorMessage struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b *Bridge) handleCommand(ctx context.Context, topic string, payload []byte) {
	id := b.deviceID(topic)
	if id == "" {
		log.Warn().Str("topic", topic).Msg("ignoring command on unexpected topic")
		return
	}

	cmd, err := device.DecodeCommand(payload)
	if err != nil {
		b.reject(id, err)
		return
	}
	d, err := b.devices.Device(ctx, id)
	if err != nil {
		b.reject(id, err)
		return
	}
	if err := device.Apply(ctx, d, cmd); err != nil {
		b.reject(id, err)
		return
	}
	commandCounter.WithLabelValues("ok").Inc()
	log.Debug().Str("device", id).Strs("fields", cmd.Fields()).Msg("mqtt command applied")

	state, err := json.Marshal(stateMessage{Kind: d.Kind(), Device: d})
	if err != nil {
		log.Error().Err(err).Str("device", id).Msg("encode device state")
		return
	}
	b.publish("state", b.topic(id, "state"), state, true)
}

func (b *Bridge) reject(id string, err error) {
	code := device.ErrorCode(err)
	commandCounter.WithLabelValues(code).Inc()
	log.Warn().Err(err).Str("device", id).Msg("mqtt command rejected")

	payload, _ := json.Marshal(errorMessage{Error: code, Message: err.Error()})
	b.publish("error", b.topic(id, "error"), payload, false)
}

func (b *Bridge) publish(kind, topic string, payload []byte, retain bool) {
	if err := b.client.Publish(topic, payload, retain); err != nil {
		publishCounter.WithLabelValues(kind, "error").Inc()
		log.Error().Err(err).Str("topic", topic).Msg("mqtt publish failed")
		return
	}
	publishCounter.WithLabelValues(kind, "ok").Inc()
}

func (b *Bridge) topic(id, leaf string) string {
	return b.prefix + "/" + id + "/" + leaf
}

// deviceID extracts <id> from <prefix>/<id>/set, or returns "".
func (b *Bridge) deviceID(topic string) string {
	rest, ok := strings.CutPrefix(topic, b.prefix+"/")
	if !ok {
		return ""
	}
	id, ok := strings.CutSuffix(rest, "/set")
	if !ok || id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

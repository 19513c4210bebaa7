package mqttbridge

import (
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	keepAlive         = 60 * time.Second
	maxReconnect      = 2 * time.Minute
	disconnectQuiesce = 1000 // milliseconds
	qos               = 1
)

// Options configures the broker connection.
type Options struct {
	Broker   string // e.g. tcp://localhost:1883
	ClientID string
	Username string
	Password string
	Prefix   string // topic root; the will is published under it
}

// Handler receives messages for a subscription.
type Handler func(topic string, payload []byte)

// PahoClient is a Client backed by a paho connection. Subscriptions are
// replayed after every reconnect since sessions are clean.
type PahoClient struct {
	cli pahomqtt.Client

	mu   sync.Mutex
	subs map[string]Handler
}

// Connect dials the broker and waits for the first connection.
func Connect(opts Options) (*PahoClient, error) {
	c := &PahoClient{subs: make(map[string]Handler)}

	o := pahomqtt.NewClientOptions()
	o.AddBroker(opts.Broker)
	o.SetClientID(opts.ClientID)
	if opts.Username != "" {
		o.SetUsername(opts.Username)
		o.SetPassword(opts.Password)
	}
	o.SetCleanSession(true)
	o.SetAutoReconnect(true)
	o.SetMaxReconnectInterval(maxReconnect)
	o.SetConnectTimeout(connectTimeout)
	o.SetKeepAlive(keepAlive)
	o.SetOrderMatters(false)
	o.SetWill(StatusTopic(opts.Prefix), StatusOffline, qos, true)
	o.OnConnect = func(cli pahomqtt.Client) {
		log.Info().Str("broker", opts.Broker).Msg("mqtt connected")
		c.mu.Lock()
		defer c.mu.Unlock()
		for topic, h := range c.subs {
			cli.Subscribe(topic, qos, wrap(h))
		}
	}
	o.OnConnectionLost = func(_ pahomqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", opts.Broker).Msg("mqtt connection lost")
	}
	c.cli = pahomqtt.NewClient(o)

	t := c.cli.Connect()
	if !t.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to %s: timed out", opts.Broker)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", opts.Broker, err)
	}
	return c, nil
}

// Subscribe registers h for topic, which may contain wildcards.
func (c *PahoClient) Subscribe(topic string, h Handler) error {
	c.mu.Lock()
	c.subs[topic] = h
	c.mu.Unlock()

	t := c.cli.Subscribe(topic, qos, wrap(h))
	if !t.WaitTimeout(publishTimeout) {
		return fmt.Errorf("subscribe %s: timed out", topic)
	}
	if err := t.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Msg("mqtt subscribed")
	return nil
}

// Publish sends payload to topic.
func (c *PahoClient) Publish(topic string, payload []byte, retain bool) error {
	t := c.cli.Publish(topic, qos, retain, payload)
	if !t.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timed out", topic)
	}
	if err := t.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close disconnects after letting in-flight work finish.
func (c *PahoClient) Close() {
	c.cli.Disconnect(disconnectQuiesce)
}

func wrap(h Handler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, m pahomqtt.Message) {
		h(m.Topic(), m.Payload())
	}
}

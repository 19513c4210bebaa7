package hub

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

const subscriberBuffer = 16

// Broker fans events from one EventSource out to any number of
// subscribers. Slow subscribers miss events rather than stall the stream.
type Broker struct {
	source EventSource

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBroker creates a Broker reading from source.
func NewBroker(source EventSource) *Broker {
	return &Broker{
		source: source,
		subs:   make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel receiving every event published after the
// call. It is closed by Unsubscribe or when Run returns.
func (b *Broker) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (b *Broker) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.subs {
		if c == ch {
			delete(b.subs, c)
			close(c)
			return
		}
	}
}

// Publish delivers ev to every subscriber with room for it.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.subs {
		select {
		case c <- ev:
		default:
			log.Warn().Str("type", ev.Type).Msg("dropping event for slow subscriber")
		}
	}
}

// Run listens on the source until ctx ends or the stream fails, then
// closes all subscriptions.
func (b *Broker) Run(ctx context.Context) error {
	defer b.closeAll()
	return b.source.Listen(ctx, b.Publish)
}

func (b *Broker) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.subs {
		delete(b.subs, c)
		close(c)
	}
}

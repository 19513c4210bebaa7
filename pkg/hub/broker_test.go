package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource emits its events then blocks until the context ends.
type scriptedSource struct {
	ready  chan struct{}
	events []Event
}

func (s *scriptedSource) Listen(ctx context.Context, handle func(Event)) error {
	<-s.ready
	for _, ev := range s.events {
		handle(ev)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestBrokerFansOut(t *testing.T) {
	src := &scriptedSource{
		ready:  make(chan struct{}),
		events: []Event{{ID: "1", Type: EventDeviceStateChanged}, {ID: "2", Type: EventSceneUpdated}},
	}
	b := NewBroker(src)
	first := b.Subscribe()
	second := b.Subscribe()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	close(src.ready)

	for _, ch := range []<-chan Event{first, second} {
		assert.Equal(t, "1", (<-ch).ID)
		assert.Equal(t, "2", (<-ch).ID)
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	_, ok := <-first
	assert.False(t, ok, "subscription closed after Run")
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker(&scriptedSource{ready: make(chan struct{})})
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	_, ok := <-ch
	assert.False(t, ok)

	b.Publish(Event{ID: "ignored"})
	b.Unsubscribe(ch)
}

func TestBrokerDropsForSlowSubscriber(t *testing.T) {
	b := NewBroker(&scriptedSource{ready: make(chan struct{})})
	ch := b.Subscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish(Event{Type: EventPing})
	}
	assert.Len(t, ch, subscriberBuffer)
}

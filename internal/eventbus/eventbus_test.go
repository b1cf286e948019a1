package eventbus

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventSuggestionChosen, func(e DomainEvent) { got <- e })
	b.Subscribe(EventLookupFailed, func(e DomainEvent) { t.Errorf("unexpected event %v", e.Type()) })

	b.Publish(SuggestionChosenEvent{BoxID: 1, Value: "Thor"})

	select {
	case e := <-got:
		chosen, ok := e.(SuggestionChosenEvent)
		require.True(t, ok)
		assert.Equal(t, "Thor", chosen.Value)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	unsubscribe := b.Subscribe(EventLookupStarted, func(DomainEvent) { first.Add(1) })
	b.Subscribe(EventLookupStarted, func(DomainEvent) { second.Add(1) })

	unsubscribe()
	b.Publish(LookupStartedEvent{Query: "Mil"})

	require.Eventually(t, func() bool { return second.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, first.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	b.Subscribe(EventLookupFailed, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventLookupFailed, func(DomainEvent) { calls.Add(1) })

	b.Publish(LookupFailedEvent{Query: "Mil", Err: errors.New("offline")})
	b.Publish(LookupFailedEvent{Query: "Milk", Err: errors.New("offline")})

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New()
	b.Close()
	b.Close()

	// publishing after close only queues and never blocks
	assert.NotPanics(t, func() { b.Publish(ConfigSavedEvent{Path: "x"}) })
}

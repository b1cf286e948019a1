package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"searchbox/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

const (
	EventQueryChanged     = domain.EventQueryChanged
	EventLookupStarted    = domain.EventLookupStarted
	EventLookupCompleted  = domain.EventLookupCompleted
	EventLookupFailed     = domain.EventLookupFailed
	EventSuggestionChosen = domain.EventSuggestionChosen
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
	EventCatalogStarted   = domain.EventCatalogStarted
)

type QueryChangedEvent = domain.QueryChangedEvent
type LookupStartedEvent = domain.LookupStartedEvent
type LookupCompletedEvent = domain.LookupCompletedEvent
type LookupFailedEvent = domain.LookupFailedEvent
type SuggestionChosenEvent = domain.SuggestionChosenEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type CatalogStartedEvent = domain.CatalogStartedEvent

const queueSize = 1000

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus and starts its dispatcher
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, queueSize),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. Events are dropped when the queue is full.
func (b *bus) Publish(event DomainEvent) {
	// query edits are too frequent for debug logs
	if event.Type() != EventQueryChanged {
		log.Debug("eventbus: publish", "event", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		log.Warn("eventbus: queue full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards queued events.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				// handlers run in their own goroutine so a slow one cannot stall the queue
				go func(h EventHandler) {
					defer func() {
						if r := recover(); r != nil {
							log.Error("eventbus: handler panic", "event", event.Type(), "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(s.handler)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

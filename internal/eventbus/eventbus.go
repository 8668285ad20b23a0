package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"draglist/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDragStarted    = domain.EventDragStarted
	EventDragMoved      = domain.EventDragMoved
	EventDragOver       = domain.EventDragOver
	EventDragEnded      = domain.EventDragEnded
	EventItemsReordered = domain.EventItemsReordered
	EventError          = domain.EventError
	EventConfigLoaded   = domain.EventConfigLoaded
	EventConfigSaved    = domain.EventConfigSaved
	EventConfigChanged  = domain.EventConfigChanged
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus.
//
// Dispatch is synchronous: drag lifecycle events must reach subscribers in
// the exact order the session emits them within one pointer-move step, so
// handlers run inline on the publisher's goroutine.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]*subscription
	log      *zap.Logger
	nextID   uint64
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// New creates a new event bus
func New(log *zap.Logger) EventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &bus{
		handlers: make(map[EventType][]*subscription),
		log:      log,
	}
}

// Publish publishes an event to all subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	// Copy so handlers can unsubscribe while we iterate
	subsCopy := make([]*subscription, len(subs))
	copy(subsCopy, subs)
	b.mu.RUnlock()

	for _, sub := range subsCopy {
		b.invoke(sub, event)
	}
}

func (b *bus) invoke(sub *subscription, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic",
				zap.String("event", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	sub.handler(event)
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], sub)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == sub.id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event DomainEvent)                                 {}
func (n *NullBus) Subscribe(eventType EventType, handler EventHandler) func() { return func() {} }

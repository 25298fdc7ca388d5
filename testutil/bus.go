package testutil

import (
	"sync"

	"github.com/c360/statekit/messenger"
)

// Published records one change published on the bus.
type Published struct {
	Topic  string
	Change messenger.StateChange
}

// Bus is an in-memory Messenger with synchronous dispatch. Handlers run in
// registration order on the publisher's goroutine, and delivery order
// matches publish order. It also implements messenger.Registrar, recording
// registered state owners.
type Bus struct {
	mu        sync.Mutex
	handlers  map[string][]messenger.Handler
	published []Published
	owners    map[string]func() any
}

// NewBus creates an empty in-memory bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]messenger.Handler),
		owners:   make(map[string]func() any),
	}
}

// Subscribe registers handler for topic.
func (b *Bus) Subscribe(topic string, handler messenger.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], handler)
	return nil
}

// Publish records the change and dispatches it synchronously to every
// handler subscribed to topic.
func (b *Bus) Publish(topic string, change messenger.StateChange) error {
	b.mu.Lock()
	b.published = append(b.published, Published{Topic: topic, Change: change})
	handlers := make([]messenger.Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.Unlock()

	// Dispatch outside the lock so handlers may publish in turn.
	for _, h := range handlers {
		h(change)
	}
	return nil
}

// Register records a state owner and its snapshot function.
func (b *Bus) Register(name string, snapshot func() any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.owners[name] = snapshot
	return nil
}

// PublishedTo returns all changes published on topic, in publish order.
func (b *Bus) PublishedTo(topic string) []messenger.StateChange {
	b.mu.Lock()
	defer b.mu.Unlock()

	var result []messenger.StateChange
	for _, p := range b.published {
		if p.Topic == topic {
			result = append(result, p.Change)
		}
	}
	return result
}

// AllPublished returns every recorded publish, in order.
func (b *Bus) AllPublished() []Published {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]Published, len(b.published))
	copy(result, b.published)
	return result
}

// SubscriberCount returns the number of handlers registered for topic.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.handlers[topic])
}

// SubscriptionCount returns the total number of registered handlers.
func (b *Bus) SubscriptionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, hs := range b.handlers {
		total += len(hs)
	}
	return total
}

// Owner returns the registered snapshot function for name, or nil.
func (b *Bus) Owner(name string) func() any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.owners[name]
}

// Clear drops all recorded publishes, keeping subscriptions and owners.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.published = nil
}

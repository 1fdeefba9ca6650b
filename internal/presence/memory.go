package presence

import (
	"context"
	"sync"

	"github.com/harshala334/virtual-office/internal/models"
)

// MemoryBus is an in-process Bus. It backs single-binary runs and tests,
// where every "tab" lives in the same process. Delivery is synchronous and
// in subscription order, matching the one-event-at-a-time model of storage
// change notifications.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

// NewMemoryBus creates an empty in-process bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]Handler)}
}

// Publish implements Bus
func (b *MemoryBus) Publish(ctx context.Context, topic string, update models.PresenceUpdate) error {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(update)
	}
	return nil
}

// Subscribe implements Bus
func (b *MemoryBus) Subscribe(ctx context.Context, topic string, handler Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = handler

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
	return unsubscribe, nil
}

// Package notify carries the zero-payload change notifications the list
// view-models emit after every mutation, plus a filesystem watcher that
// bridges mirror rewrites made by other processes onto the same bus.
package notify

import (
	"sort"
	"sync"
)

// Bus publishes named, payload-free change events to subscribers in the
// same process. One topic per entity type.
type Bus interface {
	Publish(topic string)
	// Subscribe registers fn for a topic and returns its cancel function.
	Subscribe(topic string, fn func()) (cancel func())
}

// MemoryBus delivers notifications synchronously, in subscription order.
// Because view-models persist before publishing, a subscriber that re-reads
// the mirror from its handler observes the mutation that triggered it.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[string]map[int]func()
	next int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]func())}
}

func (b *MemoryBus) Publish(topic string) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs[topic]))
	for id := range b.subs[topic] {
		ids = append(ids, id)
	}
	sort.Ints(ids) // deliver in subscription order
	handlers := make([]func(), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subs[topic][id])
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

func (b *MemoryBus) Subscribe(topic string, fn func()) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func())
	}
	id := b.next
	b.next++
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

package events

import (
	"log"
	"sync"
)

// Event is one in-process notification payload. Data carries the persisted
// notification document, keyed by its storage id, so subscribers can
// dereference it immediately.
type Event struct {
	Name string
	Data map[string]any
}

// Handler receives events synchronously on the publisher's goroutine.
// Handlers must be fast; anything slow belongs behind its own channel.
type Handler func(Event)

// Bus is a minimal in-process pub/sub. It is not a network protocol and has
// no durability: a publish with no subscribers is dropped.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
	next int
	ids  map[string]map[int]int // name -> token -> index (for Unsubscribe)
}

func NewBus() *Bus {
	return &Bus{
		subs: map[string][]Handler{},
		ids:  map[string]map[int]int{},
	}
}

// Subscribe registers h for events named name and returns a token for
// Unsubscribe.
func (b *Bus) Subscribe(name string, h Handler) int {
	if b == nil || h == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	token := b.next

	b.subs[name] = append(b.subs[name], h)
	if b.ids[name] == nil {
		b.ids[name] = map[int]int{}
	}
	b.ids[name][token] = len(b.subs[name]) - 1
	return token
}

// Unsubscribe removes the handler registered under token.
func (b *Bus) Unsubscribe(name string, token int) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	idx, ok := b.ids[name][token]
	if !ok {
		return
	}
	delete(b.ids[name], token)

	handlers := b.subs[name]
	if idx < 0 || idx >= len(handlers) {
		return
	}
	b.subs[name] = append(handlers[:idx], handlers[idx+1:]...)

	// reindex tokens after the removed slot
	for t, i := range b.ids[name] {
		if i > idx {
			b.ids[name][t] = i - 1
		}
	}
}

// Publish delivers ev to every subscriber of ev.Name. A panicking handler is
// logged and skipped; it never unwinds into the publisher.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[ev.Name]))
	copy(handlers, b.subs[ev.Name])
	b.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("[events] WARN: subscriber panic on %q: %v", ev.Name, rec)
				}
			}()
			h(ev)
		}()
	}
}

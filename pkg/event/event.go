// Package event is a minimal in-process dispatcher. Services fire domain
// events by name; the kernel wires listeners at boot (for example the
// websocket feed subscribing to created posts).
package event

import "sync"

// Handler receives the payload an event was fired with.
type Handler func(payload interface{})

type bus struct {
	mu        sync.RWMutex
	listeners map[string][]Handler
}

var defaultBus = &bus{listeners: map[string][]Handler{}}

func (b *bus) snapshot(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Handler(nil), b.listeners[name]...)
}

// Listen registers handler for the named event.
func Listen(name string, handler Handler) {
	defaultBus.mu.Lock()
	defer defaultBus.mu.Unlock()
	defaultBus.listeners[name] = append(defaultBus.listeners[name], handler)
}

// Fire invokes every listener of the named event on the calling goroutine,
// in registration order.
func Fire(name string, payload interface{}) {
	for _, h := range defaultBus.snapshot(name) {
		h(payload)
	}
}

// FireAsync invokes each listener on its own goroutine and returns without
// waiting for them.
func FireAsync(name string, payload interface{}) {
	for _, h := range defaultBus.snapshot(name) {
		go h(payload)
	}
}

// Flush drops every registered listener. Tests use it to isolate wiring.
func Flush() {
	defaultBus.mu.Lock()
	defer defaultBus.mu.Unlock()
	defaultBus.listeners = map[string][]Handler{}
}

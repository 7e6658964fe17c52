// Package event is a synchronous in-process event dispatcher.
//
//	event.Listen(services.EventCartCheckedOut, func(p interface{}) { ... })
//	event.Fire(services.EventCartCheckedOut, payload)
package event

import (
	"sync"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire runs every listener of event in registration order and returns how
// many ran. Listeners are copied first so they may register others.
func Fire(event string, payload interface{}) int {
	mu.RLock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	mu.RUnlock()

	for _, h := range hs {
		h(payload)
	}
	return len(hs)
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

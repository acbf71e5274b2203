// Package event is a small in-process event bus. Services fire domain events
// such as "order.updated"; listeners registered at boot react to them.
package event

import (
	"context"
	"sync"
)

// Handler receives an event payload.
type Handler func(ctx context.Context, payload interface{})

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers handler for event.
func (b *Bus) Listen(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Fire dispatches synchronously to every listener of event. A nil bus
// drops the event.
func (b *Bus) Fire(ctx context.Context, event string, payload interface{}) {
	if b == nil {
		return
	}

	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[event]))
	copy(hs, b.handlers[event])
	b.mu.RUnlock()

	for _, h := range hs {
		h(ctx, payload)
	}
}

// Package binding provides explicit subscription handles for event sources.
// A dependent subscribes to a shared source and holds the returned handle;
// cancelling the handle deterministically removes the handler without the
// source ever referencing the dependent's lifetime.
package binding

import (
	"sort"
	"sync"
)

// Handler receives an event name and its payload.
type Handler func(event string, payload any)

// Emitter is a minimal synchronous event source. Safe for concurrent use.
type Emitter struct {
	mu   sync.Mutex
	seq  int
	subs map[string]map[int]Handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		subs: make(map[string]map[int]Handler),
	}
}

// Subscribe registers a handler for an event and returns its handle. A nil
// handler yields an inert handle.
func (e *Emitter) Subscribe(event string, h Handler) *Subscription {
	if h == nil {
		return &Subscription{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	id := e.seq
	if e.subs[event] == nil {
		e.subs[event] = make(map[int]Handler)
	}
	e.subs[event][id] = h

	return &Subscription{
		release: func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs[event], id)
		},
	}
}

// Emit delivers the payload to every handler subscribed to the event, in
// subscription order, synchronously on the calling goroutine.
func (e *Emitter) Emit(event string, payload any) {
	e.mu.Lock()
	handlers := e.subs[event]
	ids := make([]int, 0, len(handlers))
	for id := range handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	ordered := make([]Handler, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, handlers[id])
	}
	e.mu.Unlock()

	for _, h := range ordered {
		h(event, payload)
	}
}

// Subscription is the handle a subscriber holds and releases.
type Subscription struct {
	once    sync.Once
	release func()
}

// Cancel removes the handler from the source. Idempotent; safe on a zero
// subscription.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.release != nil {
			s.release()
		}
	})
}

// Package model defines the read path presenters consume: a mapping from
// attribute name to current value, readable synchronously. The package also
// ships a map-backed implementation that publishes change events through
// explicit subscription handles, so dependent views can observe a shared
// model without the model holding their lifetimes.
package model

import (
	"sync"

	"github.com/goliatone/go-viewkit/pkg/binding"
)

// Model is the read-only contract. Presenters never write through it.
type Model interface {
	// Attributes returns a copy of the current attribute set.
	Attributes() map[string]any
	// Get reads a single attribute.
	Get(name string) (any, bool)
}

// Change describes a single attribute mutation.
type Change struct {
	Name    string
	Value   any
	Removed bool
}

// Observable is a model whose mutations can be watched through subscription
// handles.
type Observable interface {
	Model
	OnChange(fn func(Change)) *binding.Subscription
}

const changeEvent = "change"

// Map is a mutable map-backed model. Safe for concurrent use; change
// handlers run synchronously on the mutating goroutine.
type Map struct {
	mu      sync.RWMutex
	attrs   map[string]any
	emitter *binding.Emitter
}

var _ Observable = (*Map)(nil)

// NewMap creates a model seeded with the given attributes. The input map is
// copied.
func NewMap(attrs map[string]any) *Map {
	m := &Map{
		attrs:   make(map[string]any, len(attrs)),
		emitter: binding.NewEmitter(),
	}
	for key, value := range attrs {
		m.attrs[key] = value
	}
	return m
}

// Attributes returns a copy of the current attribute set.
func (m *Map) Attributes() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]any, len(m.attrs))
	for key, value := range m.attrs {
		out[key] = value
	}
	return out
}

// Get reads a single attribute.
func (m *Map) Get(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.attrs[name]
	return value, ok
}

// Set writes an attribute and publishes a change event.
func (m *Map) Set(name string, value any) {
	m.mu.Lock()
	m.attrs[name] = value
	m.mu.Unlock()

	m.emitter.Emit(changeEvent, Change{Name: name, Value: value})
}

// Delete removes an attribute, publishing a change event if it existed.
func (m *Map) Delete(name string) {
	m.mu.Lock()
	_, existed := m.attrs[name]
	delete(m.attrs, name)
	m.mu.Unlock()

	if existed {
		m.emitter.Emit(changeEvent, Change{Name: name, Removed: true})
	}
}

// OnChange subscribes to attribute mutations and returns the handle the
// subscriber releases on disposal.
func (m *Map) OnChange(fn func(Change)) *binding.Subscription {
	if fn == nil {
		return m.emitter.Subscribe(changeEvent, nil)
	}
	return m.emitter.Subscribe(changeEvent, func(_ string, payload any) {
		change, ok := payload.(Change)
		if !ok {
			return
		}
		fn(change)
	})
}

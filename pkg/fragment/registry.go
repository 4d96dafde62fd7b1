// Package fragment resolves path-like fragment names to callable template
// functions. A Registry holds explicitly registered funcs; an EngineSource
// exposes engine-loaded fragments under a declared name set. Both satisfy
// Source, which is all a presenter needs.
package fragment

import (
	"fmt"
	"sort"
	"sync"
)

// Func evaluates a fragment against a merged presenter context.
type Func func(ctx map[string]any) (string, error)

// Source is the lookup contract presenters resolve fragment names against.
// Lookup returns *MissingFragmentError when the name is unknown.
type Source interface {
	Lookup(name string) (Func, error)
}

// Registry stores fragment funcs by name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu        sync.RWMutex
	fragments map[string]Func
}

var _ Source = (*Registry)(nil)

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		fragments: make(map[string]Func),
	}
}

// Register adds a fragment func under a name. Duplicate names return an
// error.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("fragment: fragment name is required")
	}
	if fn == nil {
		return fmt.Errorf("fragment: fragment func is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fragments[name]; exists {
		return fmt.Errorf("fragment: fragment %q already registered", name)
	}

	r.fragments[name] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup retrieves a fragment func by name.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.fragments[name]
	if !ok {
		return nil, &MissingFragmentError{Name: name}
	}
	return fn, nil
}

// MustLookup panics if the fragment is missing.
func (r *Registry) MustLookup(name string) Func {
	fn, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// List returns a sorted list of registered fragment names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fragments))
	for name := range r.fragments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a fragment is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.fragments[name]
	return ok
}

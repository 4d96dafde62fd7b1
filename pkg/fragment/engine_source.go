package fragment

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-viewkit/pkg/render/template"
)

// EngineSource exposes fragments loaded by a template engine under an
// explicitly declared name set. Declaring names up front keeps unknown-name
// failures typed and side-effect free instead of surfacing as engine load
// errors mid-render.
type EngineSource struct {
	mu     sync.RWMutex
	engine template.TemplateRenderer
	names  map[string]struct{}
}

var _ Source = (*EngineSource)(nil)

// NewEngineSource wraps an engine, declaring the fragment names it serves.
func NewEngineSource(engine template.TemplateRenderer, names ...string) (*EngineSource, error) {
	if engine == nil {
		return nil, fmt.Errorf("fragment: template engine is required")
	}

	source := &EngineSource{
		engine: engine,
		names:  make(map[string]struct{}, len(names)),
	}
	source.Declare(names...)
	return source, nil
}

// Declare adds fragment names to the served set. Empty names are ignored.
func (s *EngineSource) Declare(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if name == "" {
			continue
		}
		s.names[name] = struct{}{}
	}
}

// Lookup returns a func rendering the named fragment through the engine.
func (s *EngineSource) Lookup(name string) (Func, error) {
	s.mu.RLock()
	_, ok := s.names[name]
	s.mu.RUnlock()

	if !ok {
		return nil, &MissingFragmentError{Name: name}
	}

	engine := s.engine
	return func(ctx map[string]any) (string, error) {
		return engine.RenderTemplate(name, ctx)
	}, nil
}

// List returns the declared fragment names, sorted.
func (s *EngineSource) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

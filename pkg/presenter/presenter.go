// Package presenter gives templates a single read path over a model:
// a merged context of the model's current attributes and presentation-only
// derived fields. Presenters hold no state beyond the model reference, so
// they are built fresh for every render and discarded after the template
// pass.
package presenter

import (
	"fmt"

	"github.com/goliatone/go-viewkit/pkg/fragment"
	"github.com/goliatone/go-viewkit/pkg/model"
	"github.com/goliatone/go-viewkit/pkg/render/template"
)

// Derived computes a presentation-only value from the presenter it is
// declared on. Derived funcs must be pure with respect to model state; the
// resolve guarantee (same model state, same output) depends on it.
type Derived func(p *Presenter) any

// Option configures a presenter at construction.
type Option func(*config)

type config struct {
	derived map[string]Derived
	helpers map[string]any
	source  fragment.Source
	engine  template.TemplateRenderer
}

// WithDerived declares a derived field. The name shadows any raw model
// attribute of the same name in the merged context.
func WithDerived(name string, fn Derived) Option {
	return func(cfg *config) {
		if name == "" || fn == nil {
			return
		}
		if cfg.derived == nil {
			cfg.derived = make(map[string]Derived)
		}
		cfg.derived[name] = fn
	}
}

// WithDerivedFields declares several derived fields at once.
func WithDerivedFields(fields map[string]Derived) Option {
	return func(cfg *config) {
		for name, fn := range fields {
			WithDerived(name, fn)(cfg)
		}
	}
}

// WithHelper exposes a static value or callable in the merged context.
// Helpers shadow raw attributes; derived fields shadow helpers.
func WithHelper(name string, value any) Option {
	return func(cfg *config) {
		if name == "" {
			return
		}
		if cfg.helpers == nil {
			cfg.helpers = make(map[string]any)
		}
		cfg.helpers[name] = value
	}
}

// WithFragmentSource wires the source named fragments resolve against.
func WithFragmentSource(source fragment.Source) Option {
	return func(cfg *config) {
		cfg.source = source
	}
}

// WithEngine wires the engine used for inline template content.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(cfg *config) {
		cfg.engine = engine
	}
}

// Presenter wraps exactly one model. It never mutates the model and copies
// no attributes at construction; the merge is deferred to resolve time so
// the context always reflects the model's current state.
type Presenter struct {
	model   model.Model
	derived map[string]Derived
	helpers map[string]any
	source  fragment.Source
	engine  template.TemplateRenderer
}

// New constructs a presenter over a model.
func New(m model.Model, options ...Option) (*Presenter, error) {
	if m == nil {
		return nil, fmt.Errorf("presenter: model is required")
	}

	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	return &Presenter{
		model:   m,
		derived: cfg.derived,
		helpers: cfg.helpers,
		source:  cfg.source,
		engine:  cfg.engine,
	}, nil
}

// Model returns the wrapped model.
func (p *Presenter) Model() model.Model {
	return p.model
}

// Attr reads a raw model attribute, bypassing derived shadowing. Meant
// for derived funcs that need the underlying value they shadow.
func (p *Presenter) Attr(name string) (any, bool) {
	return p.model.Get(name)
}

// Context builds the merged template context: model attributes first, then
// helpers, then derived fields, later layers shadowing earlier ones.
func (p *Presenter) Context() map[string]any {
	attrs := p.model.Attributes()
	ctx := make(map[string]any, len(attrs)+len(p.helpers)+len(p.derived))
	for name, value := range attrs {
		ctx[name] = value
	}
	for name, value := range p.helpers {
		ctx[name] = value
	}
	for name, fn := range p.derived {
		ctx[name] = fn(p)
	}
	return ctx
}

// Resolve evaluates either a named fragment or inline template content
// against the merged context.
func (p *Presenter) Resolve(templateOrName string) (string, error) {
	if template.IsTemplateContent(templateOrName) {
		return p.ResolveTemplate(templateOrName)
	}
	return p.ResolveFragment(templateOrName)
}

// ResolveFragment looks the name up in the fragment source and evaluates it.
// An unknown name surfaces as *fragment.MissingFragmentError with no side
// effects; an evaluation failure surfaces as *TemplateEvaluationError.
func (p *Presenter) ResolveFragment(name string) (string, error) {
	if p.source == nil {
		return "", fmt.Errorf("presenter: no fragment source configured")
	}

	fn, err := p.source.Lookup(name)
	if err != nil {
		return "", err
	}

	out, err := fn(p.Context())
	if err != nil {
		return "", &TemplateEvaluationError{Template: name, Err: err}
	}
	return out, nil
}

// ResolveTemplate evaluates inline template content against the merged
// context.
func (p *Presenter) ResolveTemplate(content string) (string, error) {
	if p.engine == nil {
		return "", fmt.Errorf("presenter: no template engine configured")
	}

	out, err := p.engine.RenderString(content, p.Context())
	if err != nil {
		return "", &TemplateEvaluationError{Template: "<inline>", Err: err}
	}
	return out, nil
}

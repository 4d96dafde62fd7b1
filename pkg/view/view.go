// Package view ties the pipeline together: a long-lived View owns a root
// element and, on every render, builds a fresh presenter over its model,
// resolves its fragment, and reconciles the output into the root. Model
// mutations can drive re-renders through an explicit subscription handle.
package view

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-viewkit/pkg/binding"
	"github.com/goliatone/go-viewkit/pkg/element"
	"github.com/goliatone/go-viewkit/pkg/fragment"
	"github.com/goliatone/go-viewkit/pkg/model"
	"github.com/goliatone/go-viewkit/pkg/presenter"
	"github.com/goliatone/go-viewkit/pkg/reconcile"
	"github.com/goliatone/go-viewkit/pkg/render/template"
	"github.com/goliatone/go-viewkit/pkg/snapshot"
)

// Option configures a View.
type Option func(*config)

type config struct {
	mdl           model.Model
	fragmentName  string
	inline        string
	container     string
	attrs         map[string]string
	derived       map[string]presenter.Derived
	helpers       map[string]any
	source        fragment.Source
	engine        template.TemplateRenderer
	sanitize      *bluemonday.Policy
	themeCfg      *theme.RendererConfig
	onRebind      reconcile.RebindFunc
	onRenderError func(error)
}

// WithModel sets the model the view presents. Required.
func WithModel(m model.Model) Option {
	return func(cfg *config) { cfg.mdl = m }
}

// WithFragment names the fragment rendered into the view's container.
func WithFragment(name string) Option {
	return func(cfg *config) { cfg.fragmentName = strings.TrimSpace(name) }
}

// WithInlineTemplate supplies inline template content instead of a fragment
// name.
func WithInlineTemplate(content string) Option {
	return func(cfg *config) { cfg.inline = content }
}

// WithContainer sets the container tag. Defaults to "div".
func WithContainer(tag string) Option {
	return func(cfg *config) { cfg.container = strings.TrimSpace(tag) }
}

// WithAttrs sets static attributes the container carries on every render.
func WithAttrs(attrs map[string]string) Option {
	return func(cfg *config) {
		if len(attrs) == 0 {
			return
		}
		if cfg.attrs == nil {
			cfg.attrs = make(map[string]string, len(attrs))
		}
		for key, value := range attrs {
			cfg.attrs[key] = value
		}
	}
}

// WithDerived declares a derived presenter field for this view.
func WithDerived(name string, fn presenter.Derived) Option {
	return func(cfg *config) {
		if name == "" || fn == nil {
			return
		}
		if cfg.derived == nil {
			cfg.derived = make(map[string]presenter.Derived)
		}
		cfg.derived[name] = fn
	}
}

// WithHelper exposes a static value in the presenter context.
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

// WithFragmentSource wires the fragment source renders resolve against.
func WithFragmentSource(source fragment.Source) Option {
	return func(cfg *config) { cfg.source = source }
}

// WithEngine wires the engine used for inline template content.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(cfg *config) { cfg.engine = engine }
}

// WithSanitizer sanitises fragment output before it reaches the root.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) { cfg.sanitize = policy }
}

// WithTheme applies a resolved go-theme configuration: theme partials remap
// fragment names, and theme tokens surface as CSS custom properties on the
// container plus a "theme" entry in the presenter context.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) { c.themeCfg = cfg }
}

// WithRebindNotifier registers the callback fired when reconciliation
// replaces the root, so external holders can re-attach.
func WithRebindNotifier(fn reconcile.RebindFunc) Option {
	return func(cfg *config) { cfg.onRebind = fn }
}

// WithRenderErrorHandler receives errors from renders triggered by model
// change events. Without it those errors are dropped.
func WithRenderErrorHandler(fn func(error)) Option {
	return func(cfg *config) { cfg.onRenderError = fn }
}

// View renders one model through one fragment into one owned root.
// Renders are serialised internally; everything else is a caller concern.
type View struct {
	mu sync.Mutex

	mdl           model.Model
	fragmentName  string
	inline        string
	container     string
	attrs         map[string]string
	derived       map[string]presenter.Derived
	helpers       map[string]any
	source        fragment.Source
	engine        template.TemplateRenderer
	themeCfg      *theme.RendererConfig
	reconciler    *reconcile.Reconciler
	onRenderError func(error)

	root *element.Element
	sub  *binding.Subscription
}

// New validates the configuration and builds a view. The first Render
// creates the root.
func New(options ...Option) (*View, error) {
	cfg := &config{container: "div"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.mdl == nil {
		return nil, fmt.Errorf("view: model is required")
	}
	if cfg.fragmentName == "" && cfg.inline == "" {
		return nil, fmt.Errorf("view: fragment name or inline template is required")
	}
	if cfg.fragmentName != "" && cfg.inline != "" {
		return nil, fmt.Errorf("view: fragment name and inline template are mutually exclusive")
	}
	if cfg.fragmentName != "" && cfg.source == nil {
		return nil, fmt.Errorf("view: fragment source is required to render %q", cfg.fragmentName)
	}
	if cfg.inline != "" && cfg.engine == nil {
		return nil, fmt.Errorf("view: template engine is required for inline content")
	}
	if cfg.container == "" {
		cfg.container = "div"
	}

	reconcilerOpts := []reconcile.Option{}
	if cfg.onRebind != nil {
		reconcilerOpts = append(reconcilerOpts, reconcile.WithRebindNotifier(cfg.onRebind))
	}
	if cfg.sanitize != nil {
		reconcilerOpts = append(reconcilerOpts, reconcile.WithSanitizer(cfg.sanitize))
	}

	return &View{
		mdl:           cfg.mdl,
		fragmentName:  cfg.fragmentName,
		inline:        cfg.inline,
		container:     cfg.container,
		attrs:         cfg.attrs,
		derived:       cfg.derived,
		helpers:       cfg.helpers,
		source:        cfg.source,
		engine:        cfg.engine,
		themeCfg:      cfg.themeCfg,
		reconciler:    reconcile.New(reconcilerOpts...),
		onRenderError: cfg.onRenderError,
	}, nil
}

// Render runs one full pass: fresh presenter, fragment resolution,
// reconciliation. Returns the root to hold afterwards; identity changes are
// reported through the rebind notifier before Render returns.
func (v *View) Render() (*element.Element, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.render()
}

func (v *View) render() (*element.Element, error) {
	p, err := v.buildPresenter()
	if err != nil {
		return v.root, err
	}

	var out string
	if v.inline != "" {
		out, err = p.ResolveTemplate(v.inline)
	} else {
		out, err = p.ResolveFragment(v.resolveFragmentName())
	}
	if err != nil {
		return v.root, err
	}

	snap := snapshot.New(v.container, out).WithAttrs(v.renderAttrs())
	root, err := v.reconciler.Reconcile(v.root, snap)
	if err != nil {
		return v.root, err
	}
	v.root = root
	return root, nil
}

func (v *View) buildPresenter() (*presenter.Presenter, error) {
	opts := []presenter.Option{
		presenter.WithFragmentSource(v.source),
		presenter.WithEngine(v.engine),
		presenter.WithDerivedFields(v.derived),
	}
	for name, value := range v.helpers {
		opts = append(opts, presenter.WithHelper(name, value))
	}
	if v.themeCfg != nil {
		opts = append(opts, presenter.WithHelper("theme", themeContext(v.themeCfg)))
	}
	return presenter.New(v.mdl, opts...)
}

func (v *View) resolveFragmentName() string {
	if v.themeCfg != nil {
		if remapped := strings.TrimSpace(v.themeCfg.Partials[v.fragmentName]); remapped != "" {
			return remapped
		}
	}
	return v.fragmentName
}

func (v *View) renderAttrs() map[string]string {
	out := make(map[string]string, len(v.attrs)+1)
	for key, value := range v.attrs {
		out[key] = value
	}
	if v.themeCfg != nil {
		if vars := cssVarsInline(v.themeCfg.CSSVars); vars != "" {
			if existing := out["style"]; existing != "" {
				out["style"] = strings.TrimRight(existing, "; ") + "; " + vars
			} else {
				out["style"] = vars
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Bind subscribes the view to its model's change events so mutations
// re-render automatically. The model must be observable. Calling Bind again
// replaces the previous subscription.
func (v *View) Bind() error {
	obs, ok := v.mdl.(model.Observable)
	if !ok {
		return fmt.Errorf("view: model %T is not observable", v.mdl)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sub != nil {
		v.sub.Cancel()
	}
	v.sub = obs.OnChange(func(model.Change) {
		v.mu.Lock()
		_, err := v.render()
		v.mu.Unlock()
		if err != nil && v.onRenderError != nil {
			v.onRenderError(err)
		}
	})
	return nil
}

// Dispose releases the model subscription and drops the root reference.
func (v *View) Dispose() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sub != nil {
		v.sub.Cancel()
		v.sub = nil
	}
	v.root = nil
}

// Root returns the view's current root, nil before the first render.
func (v *View) Root() *element.Element {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.root
}

// HTML serialises the current root. Empty before the first render.
func (v *View) HTML() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.root == nil {
		return "", nil
	}
	return v.root.OuterHTML()
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"tokens":  cfg.Tokens,
	}
}

// cssVarsInline renders tokens as an inline custom-property declaration
// list, sorted for deterministic output.
func cssVarsInline(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

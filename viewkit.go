// Package viewkit renders long-lived views: presenters merge a model's
// attributes with derived presentation fields, a template engine evaluates
// named fragments against the merged context, and a reconciler folds the
// output into the view's live root while preserving root identity where
// possible.
//
// The root package re-exports the main entry points; the pkg tree holds the
// pieces for callers that compose their own pipeline.
package viewkit

import (
	"github.com/goliatone/go-viewkit/pkg/element"
	"github.com/goliatone/go-viewkit/pkg/fragment"
	"github.com/goliatone/go-viewkit/pkg/model"
	"github.com/goliatone/go-viewkit/pkg/presenter"
	"github.com/goliatone/go-viewkit/pkg/reconcile"
	"github.com/goliatone/go-viewkit/pkg/render/template"
	"github.com/goliatone/go-viewkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-viewkit/pkg/snapshot"
	"github.com/goliatone/go-viewkit/pkg/view"
)

// Snapshot is the immutable result of one template pass.
type Snapshot = snapshot.Snapshot

// Element is the live root node a view owns.
type Element = element.Element

// Model is the read-only attribute contract presenters consume.
type Model = model.Model

// NewModel creates a map-backed observable model.
func NewModel(attrs map[string]any) *model.Map {
	return model.NewMap(attrs)
}

// NewPresenter wraps a model for one template pass.
func NewPresenter(m model.Model, options ...presenter.Option) (*presenter.Presenter, error) {
	return presenter.New(m, options...)
}

// NewReconciler builds a reconciler applying the given options.
func NewReconciler(options ...reconcile.Option) *reconcile.Reconciler {
	return reconcile.New(options...)
}

// NewFragmentRegistry creates an empty fragment registry.
func NewFragmentRegistry() *fragment.Registry {
	return fragment.NewRegistry()
}

// NewView builds a view from the given options.
func NewView(options ...view.Option) (*view.View, error) {
	return view.New(options...)
}

// NewEngine constructs the pongo2-backed template engine.
func NewEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	return gotemplate.New(options...)
}

// NewDefaultEngine constructs an engine serving the embedded default
// fragments.
func NewDefaultEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	base := []gotemplate.Option{gotemplate.WithFS(DefaultFragmentsFS())}
	return gotemplate.New(append(base, options...)...)
}

// NewDefaultFragmentSource exposes the embedded default fragments as a
// fragment source.
func NewDefaultFragmentSource() (*fragment.EngineSource, error) {
	engine, err := NewDefaultEngine()
	if err != nil {
		return nil, err
	}
	return fragment.NewEngineSource(engine, DefaultFragmentNames()...)
}

var _ template.TemplateRenderer = (*gotemplate.Engine)(nil)

// Package reconcile folds a freshly rendered snapshot into a view's live
// root. Rendering is always a replace, never an append: reconciling the same
// snapshot twice leaves the same content once. The root's identity survives
// any update that keeps the container tag; a tag change swaps the root and
// notifies the owner so external references can rebind.
package reconcile

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/goliatone/go-viewkit/pkg/element"
	"github.com/goliatone/go-viewkit/pkg/snapshot"
)

// RebindFunc receives the discarded root and its replacement whenever
// reconciliation changes root identity. It runs synchronously before
// Reconcile returns.
type RebindFunc func(old, next *element.Element)

// Option configures a Reconciler.
type Option func(*config)

type config struct {
	notify   RebindFunc
	sanitize *bluemonday.Policy
}

// WithRebindNotifier registers the callback fired on root replacement.
func WithRebindNotifier(fn RebindFunc) Option {
	return func(cfg *config) {
		cfg.notify = fn
	}
}

// WithSanitizer runs snapshot content through a bluemonday policy before it
// is adopted. Useful when fragment output interpolates untrusted model
// attributes.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitize = policy
	}
}

// Reconciler applies snapshots to roots. Stateless apart from configuration;
// safe to share across views as long as each root has a single writer.
type Reconciler struct {
	notify   RebindFunc
	sanitize *bluemonday.Policy
}

// New constructs a Reconciler applying any provided options.
func New(options ...Option) *Reconciler {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return &Reconciler{
		notify:   cfg.notify,
		sanitize: cfg.sanitize,
	}
}

// Reconcile updates current so it exactly reflects snap and returns the root
// to hold onto afterwards.
//
// A nil current adopts the snapshot wholesale. A matching tag keeps the root
// identity, replacing content and copying the snapshot's attribute set
// forward. A differing tag discards the old root, adopts a new one, and
// fires the rebind notifier with both.
func (r *Reconciler) Reconcile(current *element.Element, snap snapshot.Snapshot) (*element.Element, error) {
	if err := snap.Validate(); err != nil {
		return current, err
	}

	content := snap.Content
	if r.sanitize != nil && content != "" {
		content = r.sanitize.Sanitize(content)
	}
	nodes, err := snapshot.Snapshot{Tag: snap.Tag, Content: content}.ContentNodes()
	if err != nil {
		return current, err
	}

	if current == nil {
		return r.adopt(nil, snap, nodes), nil
	}

	if current.Tag() == normalizeTag(snap.Tag) {
		current.ReplaceAttrs(snap.Attrs)
		current.ReplaceContent(nodes)
		return current, nil
	}

	return r.adopt(current, snap, nodes), nil
}

func (r *Reconciler) adopt(old *element.Element, snap snapshot.Snapshot, nodes []*html.Node) *element.Element {
	next := element.New(snap.Tag)
	next.ReplaceAttrs(snap.Attrs)
	next.ReplaceContent(nodes)

	if old != nil && r.notify != nil {
		r.notify(old, next)
	}
	return next
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

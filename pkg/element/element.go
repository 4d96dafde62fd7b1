// Package element models the live root node a long-lived view owns. The root
// keeps a stable identity token across content updates; the reconciler only
// swaps the whole element when the tag changes.
package element

import (
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/net/html"

	"github.com/goliatone/go-viewkit/internal/markup"
)

var idCounter atomic.Uint64

func nextID() string {
	return fmt.Sprintf("el-%d", idCounter.Add(1))
}

// Element is a rendered root: a tag, its attribute set, and its content
// nodes. Not safe for concurrent mutation; the owning view serialises access.
type Element struct {
	id      string
	tag     string
	attrs   map[string]string
	content []*html.Node
}

// New creates an empty root with a fresh identity token.
func New(tag string) *Element {
	return &Element{
		id:  nextID(),
		tag: strings.ToLower(strings.TrimSpace(tag)),
	}
}

// ID returns the identity token. Two roots compare equal iff their tokens do.
func (e *Element) ID() string {
	return e.id
}

// Tag returns the element's tag identifier, lowercased.
func (e *Element) Tag() string {
	return e.tag
}

// Attr reads a single attribute.
func (e *Element) Attr(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

// Attrs returns a copy of the attribute set.
func (e *Element) Attrs() map[string]string {
	if len(e.attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.attrs))
	for key, value := range e.attrs {
		out[key] = value
	}
	return out
}

// ReplaceAttrs swaps the whole attribute set for the given one. Passing nil
// clears every attribute. The input map is copied.
func (e *Element) ReplaceAttrs(attrs map[string]string) {
	if len(attrs) == 0 {
		e.attrs = nil
		return
	}
	e.attrs = make(map[string]string, len(attrs))
	for key, value := range attrs {
		e.attrs[key] = value
	}
}

// ReplaceContent swaps the element's content wholesale. The previous content
// is dropped, never merged, so repeated replacement with the same nodes is
// idempotent.
func (e *Element) ReplaceContent(nodes []*html.Node) {
	if len(nodes) == 0 {
		e.content = nil
		return
	}
	e.content = nodes
}

// Content returns a deep copy of the current content nodes. Mutating the
// returned nodes never touches the root; use ReplaceContent to change it.
func (e *Element) Content() []*html.Node {
	return markup.CloneAll(e.content)
}

// InnerHTML serialises the element's content.
func (e *Element) InnerHTML() (string, error) {
	return markup.Render(markup.CloneAll(e.content))
}

// OuterHTML serialises the element including its container tag and
// attributes. Attributes appear in sorted order.
func (e *Element) OuterHTML() (string, error) {
	node := markup.BuildElement(e.tag, e.attrs, e.content)
	return markup.Render([]*html.Node{node})
}

// Package testsupport holds fixtures shared by the module's tests and useful
// to consumers testing their own views.
package testsupport

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-viewkit/pkg/fragment"
	"github.com/goliatone/go-viewkit/pkg/model"
	"github.com/goliatone/go-viewkit/pkg/view"
)

// NewBookModel returns the canonical library-book model used across tests.
func NewBookModel(t *testing.T) *model.Map {
	t.Helper()

	return model.NewMap(map[string]any{
		"title":    "Moby Dick",
		"paid":     true,
		"returned": false,
	})
}

// NewBookFragmentSource returns a registry with simple book fragments.
func NewBookFragmentSource(t *testing.T) *fragment.Registry {
	t.Helper()

	registry := fragment.NewRegistry()
	registry.MustRegister("books/item", func(ctx map[string]any) (string, error) {
		return fmt.Sprintf("<span>%v</span>", ctx["title"]), nil
	})
	registry.MustRegister("books/status", func(ctx map[string]any) (string, error) {
		return fmt.Sprintf("<span>paid=%v returned=%v</span>", ctx["paid"], ctx["returned"]), nil
	})
	return registry
}

// MustRender renders a view and returns its serialised root, failing the
// test on any error.
func MustRender(t *testing.T, v *view.View) string {
	t.Helper()

	if _, err := v.Render(); err != nil {
		t.Fatalf("render view: %v", err)
	}
	html, err := v.HTML()
	if err != nil {
		t.Fatalf("serialise view: %v", err)
	}
	return html
}

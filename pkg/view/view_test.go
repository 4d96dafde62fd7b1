package view_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-viewkit/pkg/fragment"
	"github.com/goliatone/go-viewkit/pkg/model"
	"github.com/goliatone/go-viewkit/pkg/presenter"
	"github.com/goliatone/go-viewkit/pkg/view"
)

func bookRegistry() *fragment.Registry {
	registry := fragment.NewRegistry()
	registry.MustRegister("books/item", func(ctx map[string]any) (string, error) {
		return fmt.Sprintf("<span>%v</span>", ctx["title"]), nil
	})
	registry.MustRegister("books/item-compact", func(ctx map[string]any) (string, error) {
		return fmt.Sprintf("<em>%v</em>", ctx["title"]), nil
	})
	return registry
}

func newBookView(t *testing.T, m model.Model, options ...view.Option) *view.View {
	t.Helper()

	base := []view.Option{
		view.WithModel(m),
		view.WithContainer("li"),
		view.WithFragment("books/item"),
		view.WithFragmentSource(bookRegistry()),
	}
	v, err := view.New(append(base, options...)...)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	return v
}

func TestView_RenderCreatesRoot(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "Moby Dick"})
	v := newBookView(t, m, view.WithAttrs(map[string]string{"class": "book"}))

	root, err := v.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html, err := v.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if html != `<li class="book"><span>Moby Dick</span></li>` {
		t.Fatalf("unexpected html: %q", html)
	}
	if v.Root() != root {
		t.Fatalf("expected Root to return the rendered root")
	}
}

func TestView_RerenderKeepsIdentity(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "Moby Dick"})
	v := newBookView(t, m)

	first, err := v.Render()
	if err != nil {
		t.Fatalf("first render: %v", err)
	}

	m.Set("title", "Omoo")
	second, err := v.Render()
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if second.ID() != first.ID() {
		t.Fatalf("expected identity preserved across renders")
	}
	inner, err := second.InnerHTML()
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if inner != "<span>Omoo</span>" {
		t.Fatalf("expected updated content, got %q", inner)
	}
}

func TestView_RenderIdempotent(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "Moby Dick"})
	v := newBookView(t, m)

	if _, err := v.Render(); err != nil {
		t.Fatalf("first render: %v", err)
	}
	firstHTML, err := v.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}

	if _, err := v.Render(); err != nil {
		t.Fatalf("second render: %v", err)
	}
	secondHTML, err := v.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}

	if firstHTML != secondHTML {
		t.Fatalf("render not idempotent\nfirst:  %q\nsecond: %q", firstHTML, secondHTML)
	}
	if got := strings.Count(secondHTML, "<span>"); got != 1 {
		t.Fatalf("expected exactly one span, got %d in %q", got, secondHTML)
	}
}

func TestView_BindRerendersOnModelChange(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "Moby Dick"})
	v := newBookView(t, m)

	if _, err := v.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := v.Bind(); err != nil {
		t.Fatalf("bind: %v", err)
	}

	m.Set("title", "Typee")

	html, err := v.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(html, "Typee") {
		t.Fatalf("expected bound view to re-render, got %q", html)
	}

	v.Dispose()
	m.Set("title", "Mardi")
	if v.Root() != nil {
		t.Fatalf("expected root dropped on dispose")
	}
}

func TestView_DerivedFieldsApply(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "moby dick"})
	v := newBookView(t, m, view.WithDerived("title", func(p *presenter.Presenter) any {
		raw, _ := p.Attr("title")
		return strings.ToUpper(fmt.Sprint(raw))
	}))

	if _, err := v.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}

	html, err := v.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(html, "MOBY DICK") {
		t.Fatalf("expected derived title, got %q", html)
	}
}

func TestView_MissingFragmentKeepsRoot(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "Moby Dick"})
	v, err := view.New(
		view.WithModel(m),
		view.WithFragment("books/unknown"),
		view.WithFragmentSource(bookRegistry()),
	)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	_, renderErr := v.Render()
	var missing *fragment.MissingFragmentError
	if !errors.As(renderErr, &missing) {
		t.Fatalf("expected MissingFragmentError, got %v", renderErr)
	}
	if v.Root() != nil {
		t.Fatalf("expected no root after failed first render")
	}
}

func TestView_ThemeRemapsFragmentAndInjectsVars(t *testing.T) {
	m := model.NewMap(map[string]any{"title": "Moby Dick"})
	v := newBookView(t, m, view.WithTheme(&theme.RendererConfig{
		Theme:    "acme",
		Partials: map[string]string{"books/item": "books/item-compact"},
		CSSVars:  map[string]string{"--brand": "#123456"},
	}))

	if _, err := v.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}

	html, err := v.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(html, "<em>Moby Dick</em>") {
		t.Fatalf("expected theme partial remap, got %q", html)
	}
	if !strings.Contains(html, "--brand: #123456") {
		t.Fatalf("expected css vars on container, got %q", html)
	}
}

func TestView_ConfigurationErrors(t *testing.T) {
	m := model.NewMap(nil)

	if _, err := view.New(view.WithFragment("x"), view.WithFragmentSource(bookRegistry())); err == nil {
		t.Fatalf("expected failure without model")
	}
	if _, err := view.New(view.WithModel(m)); err == nil {
		t.Fatalf("expected failure without fragment or inline template")
	}
	if _, err := view.New(view.WithModel(m), view.WithFragment("x")); err == nil {
		t.Fatalf("expected failure without fragment source")
	}
}

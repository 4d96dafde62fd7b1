package fragment_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewkit/pkg/fragment"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := fragment.NewRegistry()

	if err := registry.Register("books/item", func(ctx map[string]any) (string, error) {
		return "<li></li>", nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	fn, err := registry.Lookup("books/item")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	out, err := fn(nil)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out != "<li></li>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	registry := fragment.NewRegistry()
	registry.MustRegister("x", func(map[string]any) (string, error) { return "", nil })

	err := registry.Register("x", func(map[string]any) (string, error) { return "", nil })
	if err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	registry := fragment.NewRegistry()

	_, err := registry.Lookup("nonexistent/fragment")
	var missing *fragment.MissingFragmentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFragmentError, got %v", err)
	}
	if missing.Name != "nonexistent/fragment" {
		t.Fatalf("expected error to carry the name, got %q", missing.Name)
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	registry := fragment.NewRegistry()
	noop := func(map[string]any) (string, error) { return "", nil }
	registry.MustRegister("b", noop)
	registry.MustRegister("a", noop)
	registry.MustRegister("c", noop)

	if diff := cmp.Diff([]string{"a", "b", "c"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("a") || registry.Has("z") {
		t.Fatalf("Has answered incorrectly")
	}
}

type stubEngine struct {
	rendered []string
}

func (s *stubEngine) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubEngine) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	s.rendered = append(s.rendered, name)
	return "<p>" + name + "</p>", nil
}

func (s *stubEngine) RenderString(content string, _ any, _ ...io.Writer) (string, error) {
	return content, nil
}

func (s *stubEngine) RegisterFilter(string, func(any, any) (any, error)) error { return nil }
func (s *stubEngine) GlobalContext(any) error                                  { return nil }

func TestEngineSource_LookupDeclared(t *testing.T) {
	engine := &stubEngine{}
	source, err := fragment.NewEngineSource(engine, "books/item")
	if err != nil {
		t.Fatalf("new engine source: %v", err)
	}

	fn, err := source.Lookup("books/item")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	out, err := fn(map[string]any{})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !strings.Contains(out, "books/item") {
		t.Fatalf("expected engine render output, got %q", out)
	}
}

func TestEngineSource_UndeclaredIsMissing(t *testing.T) {
	engine := &stubEngine{}
	source, err := fragment.NewEngineSource(engine, "books/item")
	if err != nil {
		t.Fatalf("new engine source: %v", err)
	}

	_, lookupErr := source.Lookup("books/detail")
	var missing *fragment.MissingFragmentError
	if !errors.As(lookupErr, &missing) {
		t.Fatalf("expected MissingFragmentError, got %v", lookupErr)
	}
	if len(engine.rendered) != 0 {
		t.Fatalf("expected no engine side effects on missing lookup, got %v", engine.rendered)
	}

	source.Declare("books/detail")
	if _, err := source.Lookup("books/detail"); err != nil {
		t.Fatalf("lookup after declare: %v", err)
	}
}

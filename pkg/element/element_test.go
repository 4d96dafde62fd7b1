package element_test

import (
	"testing"

	"github.com/goliatone/go-viewkit/internal/markup"
	"github.com/goliatone/go-viewkit/pkg/element"
)

func TestNew_AssignsDistinctIdentity(t *testing.T) {
	a := element.New("div")
	b := element.New("div")

	if a.ID() == "" || b.ID() == "" {
		t.Fatalf("expected non-empty identity tokens")
	}
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct identities, both %q", a.ID())
	}
}

func TestElement_TagNormalised(t *testing.T) {
	el := element.New(" LI ")
	if el.Tag() != "li" {
		t.Fatalf("expected lowercased trimmed tag, got %q", el.Tag())
	}
}

func TestElement_ReplaceContentIsIdempotent(t *testing.T) {
	el := element.New("li")

	nodes, err := markup.ParseFragment("<span>A</span>")
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}

	el.ReplaceContent(nodes)
	el.ReplaceContent(nodes)

	inner, err := el.InnerHTML()
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if inner != "<span>A</span>" {
		t.Fatalf("expected single span, got %q", inner)
	}
}

func TestElement_ReplaceAttrsClears(t *testing.T) {
	el := element.New("div")
	el.ReplaceAttrs(map[string]string{"class": "open", "data-x": "1"})

	el.ReplaceAttrs(map[string]string{"class": "closed"})

	if got, _ := el.Attr("class"); got != "closed" {
		t.Fatalf("expected class replaced, got %q", got)
	}
	if _, ok := el.Attr("data-x"); ok {
		t.Fatalf("expected stale attribute dropped")
	}
}

func TestElement_OuterHTML(t *testing.T) {
	el := element.New("li")
	el.ReplaceAttrs(map[string]string{"class": "book"})

	nodes, err := markup.ParseFragment("<span>Moby Dick</span>")
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	el.ReplaceContent(nodes)

	outer, err := el.OuterHTML()
	if err != nil {
		t.Fatalf("outer html: %v", err)
	}
	if outer != `<li class="book"><span>Moby Dick</span></li>` {
		t.Fatalf("unexpected outer html: %q", outer)
	}
}

func TestElement_ContentIsDetached(t *testing.T) {
	el := element.New("li")

	nodes, err := markup.ParseFragment("<span>Moby Dick</span>")
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	el.ReplaceContent(nodes)

	got := el.Content()
	if len(got) != 1 {
		t.Fatalf("expected one content node, got %d", len(got))
	}
	got[0].FirstChild.Data = "mutated"

	inner, err := el.InnerHTML()
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if inner != "<span>Moby Dick</span>" {
		t.Fatalf("mutating the returned nodes leaked into the root: %q", inner)
	}
}

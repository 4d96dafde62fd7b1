package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewkit/pkg/model"
)

func TestMap_AttributesCopied(t *testing.T) {
	seed := map[string]any{"title": "Moby Dick"}
	m := model.NewMap(seed)

	seed["title"] = "mutated"
	if value, _ := m.Get("title"); value != "Moby Dick" {
		t.Fatalf("expected seed copied at construction, got %v", value)
	}

	attrs := m.Attributes()
	attrs["title"] = "mutated again"
	if value, _ := m.Get("title"); value != "Moby Dick" {
		t.Fatalf("expected Attributes to return a copy, got %v", value)
	}
}

func TestMap_SetPublishesChange(t *testing.T) {
	m := model.NewMap(nil)

	var seen []model.Change
	sub := m.OnChange(func(c model.Change) { seen = append(seen, c) })
	defer sub.Cancel()

	m.Set("paid", true)

	want := []model.Change{{Name: "paid", Value: true}}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("change events mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_DeletePublishesRemoval(t *testing.T) {
	m := model.NewMap(map[string]any{"paid": true})

	var seen []model.Change
	sub := m.OnChange(func(c model.Change) { seen = append(seen, c) })
	defer sub.Cancel()

	m.Delete("paid")
	m.Delete("paid")

	want := []model.Change{{Name: "paid", Removed: true}}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("expected one removal event (-want +got):\n%s", diff)
	}
	if _, ok := m.Get("paid"); ok {
		t.Fatalf("expected attribute removed")
	}
}

func TestMap_CancelledSubscriberSeesNothing(t *testing.T) {
	m := model.NewMap(nil)

	calls := 0
	sub := m.OnChange(func(model.Change) { calls++ })
	sub.Cancel()

	m.Set("title", "x")
	if calls != 0 {
		t.Fatalf("expected no deliveries after cancel, got %d", calls)
	}
}

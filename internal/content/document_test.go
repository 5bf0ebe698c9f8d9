package content

import (
	"errors"
	"testing"
)

func TestSetFieldCreatesIntermediateObjects(t *testing.T) {
	doc := Document{}
	if err := SetField(doc, "hero.title", "Welcome"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	hero, ok := doc["hero"].(map[string]any)
	if !ok {
		t.Fatalf("expected hero to be an object, got %T", doc["hero"])
	}
	if hero["title"] != "Welcome" {
		t.Fatalf("expected hero.title to be set, got %v", hero["title"])
	}
}

func TestSetFieldOverwritesLeaf(t *testing.T) {
	doc := Document{"hero": map[string]any{"title": "Old"}}
	if err := SetField(doc, "hero.title", "New"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if value, _ := StringField(doc, "hero.title"); value != "New" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}

func TestSetFieldReplacesNonObjectIntermediate(t *testing.T) {
	doc := Document{"hero": "plain string"}
	if err := SetField(doc, "hero.title", "X"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if value, ok := StringField(doc, "hero.title"); !ok || value != "X" {
		t.Fatalf("expected hero.title to be reachable, got %v ok=%v", value, ok)
	}
}

func TestSetFieldRejectsMalformedPaths(t *testing.T) {
	doc := Document{}
	if err := SetField(doc, "", "x"); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
	if err := SetField(doc, "hero..title", "x"); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if err := SetField(doc, ".hero", "x"); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath for leading dot, got %v", err)
	}
	if len(doc) != 0 {
		t.Fatalf("expected document untouched after rejected paths, got %v", doc)
	}
}

func TestIsImageKey(t *testing.T) {
	cases := map[string]bool{
		"heroImage":      true,
		"image1":         true,
		"image42":        true,
		"image_1700000":  true,
		"image_abc-def":  true,
		"image":          false,
		"imageX":         false,
		"hero":           false,
		"mainContent":    false,
		"image1_preview": false,
	}
	for key, want := range cases {
		if got := IsImageKey(key); got != want {
			t.Errorf("IsImageKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestImageKeysOnlyIncludesNonEmptyStrings(t *testing.T) {
	doc := Document{
		"heroImage": "/static/uploads/a.jpg",
		"image1":    "",
		"image2":    nil,
		"image3":    "/static/uploads/b.jpg",
		"image_x":   42,
		"title":     "not an image",
	}

	keys := ImageKeys(doc)
	if len(keys) != 2 {
		t.Fatalf("expected 2 image keys, got %d: %v", len(keys), keys)
	}
	if _, ok := keys["heroImage"]; !ok {
		t.Fatal("expected heroImage to be tracked")
	}
	if _, ok := keys["image3"]; !ok {
		t.Fatal("expected image3 to be tracked")
	}
}

func TestCloneIsolatesNestedValues(t *testing.T) {
	doc := Document{"hero": map[string]any{"title": "Original"}}
	copied := Clone(doc)

	if err := SetField(copied, "hero.title", "Changed"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	if value, _ := StringField(doc, "hero.title"); value != "Original" {
		t.Fatalf("expected source document untouched, got %q", value)
	}
}

func TestCloneNilProducesEmptyDocument(t *testing.T) {
	copied := Clone(nil)
	if copied == nil {
		t.Fatal("expected non-nil document")
	}
	if len(copied) != 0 {
		t.Fatalf("expected empty document, got %v", copied)
	}
}

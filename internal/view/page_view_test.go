package view

import (
	"strings"
	"testing"

	"github.com/campuscms/internal/db"
)

func TestBuildPageViewNilPageUsesDefaults(t *testing.T) {
	defaults := DefaultsFor("about-us")
	pv := BuildPageView(nil, defaults)

	if pv.HeroTitle != defaults.HeroTitle {
		t.Fatalf("expected default hero title, got %q", pv.HeroTitle)
	}
	if pv.MainContent == "" {
		t.Fatal("expected default main content, got empty")
	}
}

func TestBuildPageViewOverridesPerField(t *testing.T) {
	page := &db.Page{
		Slug:  "about-us",
		Title: "About Us",
		Content: db.JSONMap{
			"hero":      map[string]any{"title": "Custom Hero"},
			"heroImage": "/static/uploads/hero.jpg",
		},
	}

	pv := BuildPageView(page, DefaultsFor("about-us"))

	if pv.HeroTitle != "Custom Hero" {
		t.Fatalf("expected stored hero title, got %q", pv.HeroTitle)
	}
	// hero.description absent from the document, so the default stays.
	if pv.HeroDescription != DefaultsFor("about-us").HeroDescription {
		t.Fatalf("expected default hero description, got %q", pv.HeroDescription)
	}
	if pv.HeroImage != "/static/uploads/hero.jpg" {
		t.Fatalf("expected stored hero image, got %q", pv.HeroImage)
	}
}

func TestBuildPageViewSanitizesMainContent(t *testing.T) {
	page := &db.Page{
		Slug: "about-us",
		Content: db.JSONMap{
			"mainContent": `<p>Welcome</p><script>alert("x")</script>`,
		},
	}

	pv := BuildPageView(page, DefaultsFor("about-us"))

	if strings.Contains(string(pv.MainContent), "<script>") {
		t.Fatalf("expected script stripped, got %q", pv.MainContent)
	}
	if !strings.Contains(string(pv.MainContent), "<p>Welcome</p>") {
		t.Fatalf("expected safe markup kept, got %q", pv.MainContent)
	}
}

func TestBuildPageViewCollectsImagesAndTables(t *testing.T) {
	page := &db.Page{
		Slug: "departments",
		Content: db.JSONMap{
			"image2":  "/static/uploads/b.jpg",
			"image1":  "/static/uploads/a.jpg",
			"image_x": "",
			"tables": map[string]any{
				"intake": map[string]any{
					"headers": []any{"Branch", "Seats"},
					"rows":    []any{[]any{"CSE", "120"}, []any{"ECE", "60"}},
				},
				"broken": "not a table",
			},
		},
	}

	pv := BuildPageView(page, DefaultsFor("departments"))

	if len(pv.Images) != 2 || pv.Images[0] != "/static/uploads/a.jpg" {
		t.Fatalf("expected sorted image list, got %v", pv.Images)
	}

	table, ok := pv.Tables["intake"]
	if !ok {
		t.Fatalf("expected intake table, got %v", pv.Tables)
	}
	if len(table.Headers) != 2 || len(table.Rows) != 2 {
		t.Fatalf("unexpected table shape %+v", table)
	}
	if _, ok := pv.Tables["broken"]; ok {
		t.Fatal("malformed table entries must be skipped")
	}
}

func TestExtractMapEmbed(t *testing.T) {
	iframe := `<iframe src="https://www.google.com/maps/embed?pb=xyz" width="600"></iframe>`
	if got := ExtractMapEmbed(iframe); got != "https://www.google.com/maps/embed?pb=xyz" {
		t.Fatalf("expected src extracted from iframe, got %q", got)
	}
	if got := ExtractMapEmbed("https://maps.example.com/embed/1"); got != "https://maps.example.com/embed/1" {
		t.Fatalf("expected raw URL accepted, got %q", got)
	}
	if got := ExtractMapEmbed("javascript:alert(1)"); got != "" {
		t.Fatalf("expected non-http scheme rejected, got %q", got)
	}
	if got := ExtractMapEmbed("<iframe>no src</iframe>"); got != "" {
		t.Fatalf("expected iframe without src rejected, got %q", got)
	}
}

func TestDefaultsForUnknownSlug(t *testing.T) {
	d := DefaultsFor("civil-engineering")
	if d.Title != "Civil Engineering" {
		t.Fatalf("expected title derived from slug, got %q", d.Title)
	}
	if d.MainContent == "" {
		t.Fatal("expected generic main content")
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("# Notice\n\n<script>alert(1)</script>*admissions open*"))
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected script stripped, got %q", out)
	}
	if !strings.Contains(out, "<em>admissions open</em>") {
		t.Fatalf("expected markdown rendered, got %q", out)
	}
}

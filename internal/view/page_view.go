package view

import (
	"html/template"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/campuscms/internal/content"
	"github.com/campuscms/internal/db"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Table is a rendered content table.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// PageView is the render-ready projection of a content page. Every slot falls
// back to a compiled-in default so the public page always has something to
// show.
type PageView struct {
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	HeroTitle       string           `json:"heroTitle"`
	HeroDescription string           `json:"heroDescription"`
	HeroImage       string           `json:"heroImage,omitempty"`
	MainContent     template.HTML    `json:"mainContent"`
	Message         template.HTML    `json:"message,omitempty"`
	MapEmbed        string           `json:"mapEmbed,omitempty"`
	Images          []string         `json:"images,omitempty"`
	Tables          map[string]Table `json:"tables,omitempty"`
	Profile         map[string]any   `json:"profile,omitempty"`
	Additional      map[string]any   `json:"additional,omitempty"`
}

// BuildPageView merges a stored page over defaults. page may be nil (fetch
// failed or the slug has no document yet); the view is then defaults only.
// Rich-text fields pass through the HTML sanitizer before rendering.
func BuildPageView(page *db.Page, defaults PageDefaults) PageView {
	pv := PageView{
		Slug:            defaults.Slug,
		Title:           defaults.Title,
		HeroTitle:       defaults.HeroTitle,
		HeroDescription: defaults.HeroDescription,
		MainContent:     sanitizeHTML(defaults.MainContent),
	}
	if defaults.Message != "" {
		pv.Message = sanitizeHTML(defaults.Message)
	}

	if page == nil {
		return pv
	}

	pv.Slug = page.Slug
	if page.Title != "" {
		pv.Title = page.Title
	}

	doc := content.Document(page.Content)

	if v, ok := content.StringField(doc, "hero.title"); ok {
		pv.HeroTitle = v
	}
	if v, ok := content.StringField(doc, "hero.description"); ok {
		pv.HeroDescription = v
	}
	if v, ok := content.StringField(doc, "heroImage"); ok {
		pv.HeroImage = v
	}
	if v, ok := content.StringField(doc, "mainContent"); ok {
		pv.MainContent = sanitizeHTML(v)
	}
	if v, ok := content.StringField(doc, "message"); ok {
		pv.Message = sanitizeHTML(v)
	}
	if v, ok := content.StringField(doc, "mapEmbed"); ok {
		pv.MapEmbed = ExtractMapEmbed(v)
	}

	pv.Images = collectImages(doc)
	pv.Tables = collectTables(doc)
	if profile, ok := doc["profile"].(map[string]any); ok {
		pv.Profile = profile
	}
	if additional, ok := doc["additional"].(map[string]any); ok {
		pv.Additional = additional
	}

	return pv
}

func sanitizeHTML(raw string) template.HTML {
	return template.HTML(sanitizer.Sanitize(raw))
}

// collectImages gathers the open-ended image slots (everything but the hero)
// in a stable key order.
func collectImages(doc content.Document) []string {
	keys := make([]string, 0)
	for key := range content.ImageKeys(doc) {
		if key == "heroImage" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	images := make([]string, 0, len(keys))
	for _, key := range keys {
		if path, ok := doc[key].(string); ok && path != "" {
			images = append(images, path)
		}
	}
	return images
}

func collectTables(doc content.Document) map[string]Table {
	raw, ok := doc["tables"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}

	tables := make(map[string]Table, len(raw))
	for name, value := range raw {
		entry, ok := value.(map[string]any)
		if !ok {
			continue
		}
		tables[name] = Table{
			Headers: stringSlice(entry["headers"]),
			Rows:    rowSlice(entry["rows"]),
		}
	}
	if len(tables) == 0 {
		return nil
	}
	return tables
}

func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func rowSlice(value any) [][]string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([][]string, 0, len(items))
	for _, item := range items {
		if row := stringSlice(item); row != nil {
			out = append(out, row)
		}
	}
	return out
}

var iframeSrcPattern = regexp.MustCompile(`src\s*=\s*"([^"]+)"`)

// ExtractMapEmbed pulls an embeddable URL out of admin input, which may be a
// pasted <iframe> snippet or a raw URL. Anything else yields an empty string.
func ExtractMapEmbed(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.Contains(raw, "<iframe") {
		if match := iframeSrcPattern.FindStringSubmatch(raw); match != nil {
			raw = match[1]
		} else {
			return ""
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return parsed.String()
}

package view

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
	goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
)

// RenderMarkdown converts admin-authored markdown (announcement bodies) to
// sanitized HTML.
func RenderMarkdown(markdown string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(markdown), &buf); err != nil {
		return sanitizeHTML(markdown)
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

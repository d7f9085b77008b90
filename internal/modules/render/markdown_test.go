package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("# Hello\n\nsome *text* with a [link](https://example.com)")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<em>text</em>")
	assert.Contains(t, html, `href="https://example.com"`)

	assert.Equal(t, "", RenderMarkdown("   "))
}

func TestRenderMarkdownTables(t *testing.T) {
	html := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, html, "<table>")
}

func TestRenderDocumentEscapesTitle(t *testing.T) {
	doc := renderDocument(`<script>alert(1)</script>`, "<p>body</p>")
	assert.NotContains(t, doc, "<script>alert(1)</script>")
	assert.Contains(t, doc, "<p>body</p>")
}

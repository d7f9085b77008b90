// Package render serves portfolio item text as standalone HTML pages, for
// sharing and print.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// RenderMarkdown converts markdown text to an HTML fragment. Input that fails
// to parse falls back to escaped plain text.
func RenderMarkdown(markdownText string) string {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return ""
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "<pre>" + template.HTMLEscapeString(text) + "</pre>"
	}
	return out.String()
}

func renderDocument(title, bodyHTML string) string {
	escapedTitle := template.HTMLEscapeString(strings.TrimSpace(title))
	return `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>` + escapedTitle + `</title>
  <style>
    body { margin: 0; padding: 24px; font: 16px/1.7 -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: #222; background: #fff; }
    main { max-width: 860px; margin: 0 auto; }
    h1 { margin: 0 0 20px; font-size: 28px; }
    img { max-width: 100%; }
    pre { white-space: pre-wrap; word-break: break-word; border: 1px solid #eee; border-radius: 8px; padding: 16px; background: #fafafa; }
    code { background: #f4f4f4; border-radius: 4px; padding: 2px 4px; }
    blockquote { margin: 0; padding-left: 1em; border-left: 3px solid #ddd; color: #555; }
  </style>
</head>
<body>
  <main>
    <h1>` + escapedTitle + `</h1>
    ` + bodyHTML + `
  </main>
</body>
</html>`
}

package render

import (
	"bytes"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// markdown is the shared converter. goldmark converters are immutable after
// construction and safe for concurrent use.
//
// Raw HTML is deliberately passed through here (WithUnsafe): the sanitation
// pass that follows is the single place where untrusted markup is
// neutralized. Dropping raw HTML at the converter would violate the
// escape-and-retain contract for disallowed tags.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithUnsafe(),
	),
)

// MarkdownAndSanitize converts a markup string to HTML and neutralizes
// unsafe constructs. It never fails: malformed markup degrades to escaped
// literal text.
//
// This must be called exactly once per raw input. The sanitizer is not
// idempotent; running it over its own output re-escapes the markup.
func MarkdownAndSanitize(text string) string {
	// NUL bytes confuse the downstream tokenizer and carry no meaning in
	// text data.
	text = strings.ReplaceAll(text, "\x00", "")

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		// Conversion to an in-memory buffer cannot fail in practice; if it
		// ever does, degrade to escaped literal text.
		return escapeText(text)
	}
	return strings.TrimSpace(sanitize(buf.String()))
}

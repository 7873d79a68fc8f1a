package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownEmphasis(t *testing.T) {
	got := MarkdownAndSanitize("*Italics1* _Italics2_ **bold1** __bold2__")
	assert.Equal(t,
		"<p><em>Italics1</em> <em>Italics2</em> <strong>bold1</strong> <strong>bold2</strong></p>",
		got)
}

func TestMarkdownLink(t *testing.T) {
	got := MarkdownAndSanitize("[TensorFlow](http://tensorflow.org)")
	assert.Equal(t, `<p><a href="http://tensorflow.org">TensorFlow</a></p>`, got)
}

func TestMarkdownOrderedList(t *testing.T) {
	got := MarkdownAndSanitize("1. One\n2. Two\n3. Three\n")
	assert.Equal(t, "<ol>\n<li>One</li>\n<li>Two</li>\n<li>Three</li>\n</ol>", got)
}

func TestMarkdownNestedList(t *testing.T) {
	got := MarkdownAndSanitize("- outer\n  - inner\n")
	assert.Contains(t, got, "<ul>")
	assert.Contains(t, got, "<li>outer")
	assert.Contains(t, got, "<li>inner</li>")
	// The inner list nests inside the outer item.
	assert.Greater(t, len(got), len("<ul><li>outer</li><li>inner</li></ul>"))
}

func TestMarkdownPipeTable(t *testing.T) {
	src := "An | Example | Table\n" +
		"--- | --- | ---\n" +
		"A | B | C\n" +
		"1 | 2 | 3\n"

	got := MarkdownAndSanitize(src)
	assert.True(t, strings.HasPrefix(got, "<table>"))
	assert.True(t, strings.HasSuffix(got, "</table>"))
	assert.Contains(t, got, "<thead>")
	assert.Contains(t, got, "<th>An</th>")
	assert.Contains(t, got, "<th>Example</th>")
	assert.Contains(t, got, "<th>Table</th>")
	assert.Contains(t, got, "<tbody>")
	for _, cell := range []string{"A", "B", "C", "1", "2", "3"} {
		assert.Contains(t, got, "<td>"+cell+"</td>")
	}
}

func TestSanitizeScriptEscapedNotDropped(t *testing.T) {
	got := MarkdownAndSanitize("<script>alert('xss')</script>")
	assert.Equal(t, "&lt;script&gt;alert('xss')&lt;/script&gt;", got)
}

func TestSanitizeStripsDangerousAttributes(t *testing.T) {
	got := MarkdownAndSanitize(`hello <a name="n" href="javascript:alert('xss')">*you*</a>`)
	assert.Equal(t, "<p>hello <a><em>you</em></a></p>", got)
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	got := MarkdownAndSanitize(`click <a href="http://example.com" onclick="evil()">here</a>`)
	assert.Equal(t, `<p>click <a href="http://example.com">here</a></p>`, got)
}

func TestSanitizeKeepsSafeURLSchemes(t *testing.T) {
	for _, src := range []string{
		"[r](http://example.com)",
		"[r](https://example.com)",
		"[r](mailto:someone@example.com)",
		"[r](/relative/path)",
	} {
		got := MarkdownAndSanitize(src)
		assert.Contains(t, got, "href=", "scheme should survive: %s", src)
	}

	got := MarkdownAndSanitize("[r](javascript:alert(1))")
	assert.NotContains(t, got, "href")
	assert.NotContains(t, got, "javascript")
}

func TestSanitizeNeverReappliedUnicode(t *testing.T) {
	got := MarkdownAndSanitize("Iñtërnâtiônàlizætiøn⚡💩")
	assert.Equal(t, "<p>Iñtërnâtiônàlizætiøn⚡💩</p>", got)
}

func TestMarkdownCodeFenceHighlighting(t *testing.T) {
	got := MarkdownAndSanitize("```go\nfunc main() {}\n```\n")
	assert.Contains(t, got, "<pre")
	assert.Contains(t, got, "class=")
	assert.NotContains(t, got, "<script")
}

func TestMarkdownNulBytesStripped(t *testing.T) {
	got := MarkdownAndSanitize("fo\x00o")
	assert.Equal(t, "<p>foo</p>", got)
}

func TestMarkdownEmptyInput(t *testing.T) {
	assert.Equal(t, "", MarkdownAndSanitize(""))
}

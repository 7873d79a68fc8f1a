package render

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// allowedTags is the tag allow-list. span is included for chroma's
// highlighted code spans.
var allowedTags = map[string]bool{
	"ul": true, "ol": true, "li": true,
	"p": true, "pre": true, "code": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "br": true,
	"strong": true, "em": true,
	"a": true, "img": true, "span": true,
	"table": true, "thead": true, "tbody": true,
	"tr": true, "th": true, "td": true,
}

// allowedAttrs maps tag -> permitted attribute names. Attributes absent from
// a tag's set are stripped while the tag itself is retained. Inline event
// handlers (on*) are never listed.
var allowedAttrs = map[string]map[string]bool{
	"a":    {"href": true, "title": true},
	"img":  {"src": true, "title": true, "alt": true},
	"span": {"class": true},
	"pre":  {"class": true},
	"code": {"class": true},
	"th":   {"align": true},
	"td":   {"align": true},
}

// urlAttrs are attributes whose values are navigable URLs and therefore
// subject to the scheme allow-list.
var urlAttrs = map[string]bool{"href": true, "src": true}

var allowedSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// sanitize rewrites an HTML fragment against the allow-lists above.
//
// Disallowed tags are not removed: their source text is escaped and kept, so
// a <script> element survives as visible literal text with no execution
// semantics. Text inside raw-text elements (script, style) is emitted as
// escaped text like any other character data. Comments and doctypes are
// dropped. No markup is ever introduced that is not derivable from the
// input.
func sanitize(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF ends the fragment. Any other tokenizer error means the
			// remaining input is unparseable; emitting nothing further is
			// the safe degradation.
			return b.String()
		case html.TextToken:
			b.WriteString(escapeText(z.Token().Data))
		case html.StartTagToken, html.SelfClosingTagToken:
			// Raw must be captured before Token(), which reuses the buffer.
			raw := string(z.Raw())
			tok := z.Token()
			if !allowedTags[tok.Data] {
				b.WriteString(escapeText(raw))
				continue
			}
			b.WriteByte('<')
			b.WriteString(tok.Data)
			for _, attr := range tok.Attr {
				if !attrAllowed(tok.Data, attr.Key, attr.Val) {
					continue
				}
				b.WriteByte(' ')
				b.WriteString(attr.Key)
				b.WriteString(`="`)
				b.WriteString(attrEscaper.Replace(attr.Val))
				b.WriteByte('"')
			}
			if tt == html.SelfClosingTagToken {
				b.WriteByte('/')
			}
			b.WriteByte('>')
		case html.EndTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			if !allowedTags[tok.Data] {
				b.WriteString(escapeText(raw))
				continue
			}
			b.WriteString("</")
			b.WriteString(tok.Data)
			b.WriteByte('>')
		case html.CommentToken, html.DoctypeToken:
			// Dropped entirely.
		}
	}
}

func attrAllowed(tag, key, val string) bool {
	attrs, ok := allowedAttrs[tag]
	if !ok || !attrs[key] {
		return false
	}
	if urlAttrs[key] {
		return safeURL(val)
	}
	return true
}

// safeURL accepts relative URLs and the allow-listed schemes. Anything that
// fails to parse is rejected; that covers scheme-obfuscation attempts like
// embedded control characters.
func safeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	return allowedSchemes[strings.ToLower(u.Scheme)]
}

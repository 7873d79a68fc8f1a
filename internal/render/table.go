package render

import (
	"strings"

	"github.com/textboard/textboard/internal/tensor"
)

// MakeTable renders a rank-1 or rank-2 tensor as an HTML <table> fragment.
//
// Rank-1 input renders as a single-column table, one row per element. A nil
// headers slice omits the <thead>; otherwise the header count must equal the
// column count. Row order matches tensor order exactly.
//
// Cells are emitted raw with no escaping. Escaping is the sanitizer's
// responsibility: callers pass either trusted strings or the output of
// MarkdownAndSanitize.
//
// The byte format is contractual and covered by golden files: one tag per
// line, no trailing newline after </table>.
func MakeTable(t tensor.Strings, headers []string) (string, error) {
	var rows, cols int
	switch t.Rank() {
	case 1:
		rows, cols = t.Dim(0), 1
	case 2:
		rows, cols = t.Dim(0), t.Dim(1)
	default:
		return "", invalidShapef("table rendering requires a rank-1 or rank-2 tensor, got rank %d", t.Rank())
	}
	if headers != nil && len(headers) != cols {
		return "", invalidHeadersf("%d columns but %d headers", cols, len(headers))
	}

	var b strings.Builder
	b.WriteString("<table>\n")
	if headers != nil {
		b.WriteString("<thead>\n<tr>\n")
		for _, h := range headers {
			b.WriteString("<th>")
			b.WriteString(h)
			b.WriteString("</th>\n")
		}
		b.WriteString("</tr>\n</thead>\n")
	}
	b.WriteString("<tbody>\n")
	for r := 0; r < rows; r++ {
		b.WriteString("<tr>\n")
		for c := 0; c < cols; c++ {
			b.WriteString("<td>")
			b.WriteString(t.Values[r*cols+c])
			b.WriteString("</td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String(), nil
}

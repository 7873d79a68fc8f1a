package render

import (
	"fmt"

	"github.com/textboard/textboard/internal/tensor"
)

// warningTemplate announces lossy reduction of tensors above rank 2. The
// rank placeholder must carry the literal original rank.
const warningTemplate = "**Warning:** this tensor has rank %d; only 2-D tables " +
	"are supported, so its first 2-D slice is shown."

// TextArrayToHTML renders a tensor of any rank as a sanitized HTML fragment.
//
// Dispatch is by rank and total: rank 0 renders the single string as markup;
// ranks 1 and 2 render a table whose cells each pass through
// MarkdownAndSanitize; ranks 3 and above are reduced to their first 2-D
// slice with a warning block prepended. No rank is unhandled.
func TextArrayToHTML(t tensor.Strings) string {
	switch {
	case t.Rank() == 0:
		if len(t.Values) == 0 {
			return ""
		}
		return MarkdownAndSanitize(t.Values[0])
	case t.Rank() <= 2:
		return cellTable(t)
	default:
		reduced, _, err := tensor.ReduceTo2D(t)
		if err != nil {
			// Unreachable: rank > 2 always reduces.
			return escapeText(fmt.Sprint(t.Values))
		}
		warning := MarkdownAndSanitize(fmt.Sprintf(warningTemplate, t.Rank()))
		return warning + cellTable(reduced)
	}
}

// cellTable renders each element through MarkdownAndSanitize and assembles
// the already-sanitized fragments into a table of the tensor's shape. The
// cells must not be escaped again.
func cellTable(t tensor.Strings) string {
	cells := make([]string, len(t.Values))
	for i, v := range t.Values {
		cells[i] = MarkdownAndSanitize(v)
	}
	rendered := tensor.Strings{Dims: t.Dims, Values: cells}
	table, err := MakeTable(rendered, nil)
	if err != nil {
		// Unreachable: rank is 1 or 2 by construction and headers are nil.
		return escapeText(fmt.Sprint(t.Values))
	}
	return table
}

// Package render turns string tensors into sanitized HTML fragments.
//
// The pipeline has three stages, composed by TextArrayToHTML:
//
//  1. MarkdownAndSanitize converts one markup string to HTML (goldmark with
//     pipe tables and fenced-code highlighting, raw HTML passed through) and
//     then applies a single allow-list sanitation pass. Disallowed tags are
//     escaped and kept as literal text, never silently dropped; disallowed
//     attributes and javascript: URLs are stripped from retained tags.
//  2. MakeTable assembles rank-1 or rank-2 cell content into a <table>
//     fragment with a fixed line-per-tag byte format. Cells are emitted raw:
//     by the time they reach the table they are already sanitized, and
//     escaping them again would corrupt the markup.
//  3. TextArrayToHTML dispatches on tensor rank (0, 1, 2, >=3). Ranks above
//     2 are reduced to their first 2-D slice and prefixed with a warning
//     block naming the original rank.
//
// Sanitization runs exactly once per raw input. It is not idempotent:
// feeding sanitized output back through would re-escape it.
//
// Everything here is stateless and safe for concurrent use.
package render

// Package wire produces deterministic JSON for API payloads and golden
// files.
//
// It differs from encoding/json in three ways that matter here:
//
//   - object keys are sorted by UTF-16 code units (RFC 8785 order), so
//     repeated marshals of the same index are byte-identical;
//   - strings are NFC normalized at the serialization boundary;
//   - HTML is not entity-escaped: the text field of a record is sanitized
//     HTML, and escaping < > & again would corrupt it for the viewer.
package wire

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Marshal encodes v as deterministic JSON. Supported values: nil, bool,
// string, int, int64, float64, []string, []any, map[string]any and
// map[string][]string. Anything else is an error; callers build payloads
// from these shapes explicitly rather than relying on reflection.
func Marshal(v any) ([]byte, error) {
	return appendValue(nil, v)
}

func appendValue(b []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return append(b, "null"...), nil
	case bool:
		if val {
			return append(b, "true"...), nil
		}
		return append(b, "false"...), nil
	case string:
		return appendString(b, val), nil
	case int:
		return strconv.AppendInt(b, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(b, val, 10), nil
	case float64:
		return appendFloat(b, val)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return appendArray(b, items)
	case []any:
		return appendArray(b, val)
	case map[string]any:
		return appendObject(b, val)
	case map[string][]string:
		obj := make(map[string]any, len(val))
		for k, tags := range val {
			obj[k] = tags
		}
		return appendObject(b, obj)
	default:
		return nil, fmt.Errorf("wire: unsupported type %T", v)
	}
}

func appendArray(b []byte, items []any) ([]byte, error) {
	b = append(b, '[')
	for i, item := range items {
		if i > 0 {
			b = append(b, ',')
		}
		var err error
		b, err = appendValue(b, item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return append(b, ']'), nil
}

func appendObject(b []byte, obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessUTF16(keys[i], keys[j])
	})

	b = append(b, '{')
	for i, k := range keys {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendString(b, k)
		b = append(b, ':')
		var err error
		b, err = appendValue(b, obj[k])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
	}
	return append(b, '}'), nil
}

// lessUTF16 orders strings by UTF-16 code units. Go's native string
// comparison orders by UTF-8 bytes, which diverges for characters outside
// the BMP.
func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// appendString writes a JSON string with NFC normalization and without HTML
// escaping. Only the quote, backslash and control characters are escaped.
func appendString(b []byte, s string) []byte {
	s = norm.NFC.String(s)
	b = append(b, '"')
	for _, r := range s {
		switch r {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		default:
			if r < 0x20 {
				b = append(b, fmt.Sprintf(`\u%04x`, r)...)
			} else {
				b = utf8.AppendRune(b, r)
			}
		}
	}
	return append(b, '"')
}

// appendFloat mirrors encoding/json's number formatting: shortest
// round-trip, 'f' form except for very large or very small magnitudes.
func appendFloat(b []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("wire: unsupported float value %v", f)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// Trim the leading zero of a small negative exponent: 2e-08 -> 2e-8.
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b, nil
}

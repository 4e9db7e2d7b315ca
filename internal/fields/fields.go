// Package fields implements the header field-list grammar. A field list
// is a comma-separated sequence of names; a name may be followed by a
// parenthesized, recursively nested sub-field list declaring that the
// corresponding column holds a fixed-arity positional tuple.
//
// Fields exist only while a header is being interpreted; they never
// appear in parsed values.
package fields

import (
	"errors"
	"strings"

	"github.com/BackGwa/go-ort/internal/scanner"
)

// ErrUnmatchedParen reports a closing parenthesis with no matching
// opener in a field list.
var ErrUnmatchedParen = errors.New("unmatched closing parenthesis")

// Field describes a named column. A nil Sub means a scalar column; a
// non-nil Sub means the column value is a positional tuple matching the
// sub-fields, recursively.
type Field struct {
	Name string
	Sub  []Field
}

// Nested reports whether the field declares a tuple-valued column.
func (f Field) Nested() bool { return f.Sub != nil }

// Parse interprets a field-list string. Names are trimmed and
// unescaped; empty names are skipped. Parenthesis depth is tracked
// explicitly, and a backslash escapes the next character so escaped
// parens and commas stay part of the name.
func Parse(list string) ([]Field, error) {
	if list == "" {
		return []Field{}, nil
	}

	var result []Field
	var cur strings.Builder
	depth := 0
	runes := []rune(list)

	flush := func(sub []Field) {
		name := strings.TrimSpace(cur.String())
		cur.Reset()
		if name == "" && sub == nil {
			return
		}
		result = append(result, Field{Name: scanner.Unescape(name), Sub: sub})
	}

	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '\\' && i+1 < len(runes) {
			cur.WriteRune(ch)
			cur.WriteRune(runes[i+1])
			i++
			continue
		}

		switch ch {
		case '(':
			if depth == 0 {
				// Scan to the matching close and recurse on the interior.
				var nested strings.Builder
				nestedDepth := 1
				i++
				for i < len(runes) && nestedDepth > 0 {
					c := runes[i]
					if c == '\\' && i+1 < len(runes) {
						nested.WriteRune(c)
						nested.WriteRune(runes[i+1])
						i += 2
						continue
					}
					switch c {
					case '(':
						nestedDepth++
					case ')':
						nestedDepth--
					}
					if nestedDepth > 0 {
						nested.WriteRune(c)
					}
					i++
				}
				sub, err := Parse(nested.String())
				if err != nil {
					return nil, err
				}
				flush(sub)
				i-- // the outer loop re-advances
				continue
			}
			depth++
			cur.WriteRune(ch)
		case ')':
			depth--
			if depth < 0 {
				return nil, ErrUnmatchedParen
			}
			cur.WriteRune(ch)
		case ',':
			if depth == 0 {
				flush(nil)
			} else {
				cur.WriteRune(ch)
			}
		default:
			cur.WriteRune(ch)
		}
	}

	flush(nil)
	return result, nil
}

// Package scanner implements the character-level machinery shared by the
// ORT parser and generator: the backslash escaping alphabet and
// depth-aware splitting of comma-separated text.
//
// Splitting tracks two independent nesting counters, one for "(...)" and
// one for "[...]". A backslash escapes exactly the next character, so an
// escaped comma, parenthesis or bracket never affects depth or splitting.
package scanner

import "strings"

// SplitTop splits s on top-level, unescaped commas. Commas inside
// parenthesis or bracket groups, or preceded by a backslash, do not
// split. The result always has at least one element; parts are returned
// untrimmed and with escapes intact.
func SplitTop(s string) []string {
	parts := []string{}
	var cur strings.Builder
	escaped := false
	parenDepth := 0
	bracketDepth := 0

	for _, ch := range s {
		if escaped {
			cur.WriteRune(ch)
			escaped = false
			continue
		}

		switch ch {
		case '\\':
			escaped = true
			cur.WriteByte('\\')
		case '(':
			parenDepth++
			cur.WriteRune(ch)
		case ')':
			parenDepth--
			cur.WriteRune(ch)
		case '[':
			bracketDepth++
			cur.WriteRune(ch)
		case ']':
			bracketDepth--
			cur.WriteRune(ch)
		case ',':
			if parenDepth == 0 && bracketDepth == 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			} else {
				cur.WriteRune(ch)
			}
		default:
			cur.WriteRune(ch)
		}
	}

	parts = append(parts, cur.String())
	return parts
}

// CutPair splits a key:value pair on its first unescaped colon. The
// reported ok is false when s contains no such colon.
func CutPair(s string) (key, val string, ok bool) {
	escaped := false
	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case ':':
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// Escape prefixes the structural characters ( ) [ ] , and backslash with
// a backslash, and renders newline, tab and carriage return as the
// two-character sequences \n, \t and \r. It is the exact inverse of
// Unescape.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		switch ch {
		case '(':
			b.WriteString(`\(`)
		case ')':
			b.WriteString(`\)`)
		case '[':
			b.WriteString(`\[`)
		case ']':
			b.WriteString(`\]`)
		case ',':
			b.WriteString(`\,`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Unescape resolves backslash sequences: \n, \t and \r become the
// corresponding control characters and any other escaped character
// becomes itself. A trailing lone backslash is dropped.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, ch := range s {
		if escaped {
			switch ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteRune(ch)
			}
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

package ort

import (
	"strconv"
	"strings"

	"github.com/BackGwa/go-ort/internal/fields"
	"github.com/BackGwa/go-ort/internal/scanner"
)

// Parse reads an ORT document and returns its value.
//
// The document is scanned as an ordered sequence of lines. Blank lines
// and lines whose first non-whitespace character is '#' are skipped
// everywhere. The remaining lines form sections, each a header line
// followed by the data lines up to the next header.
//
// Three header dialects exist. An anonymous header ":fields:" makes its
// records the result of the whole document and ends parsing
// immediately; a single record is returned unwrapped. A named header
// "key:fields:" stores its records under key in the top-level object.
// A bare "key:" header stores a single value taken from the section's
// first data line only.
//
// On malformed input Parse returns a *ParseError carrying the 1-based
// line number and the raw offending line.
func Parse(data []byte, opts ...Option) (*Value, error) {
	o := options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	p := &parser{lines: splitLines(string(data)), maxDepth: o.maxDepth}
	return p.parseDocument()
}

type parser struct {
	lines    []string
	maxDepth int
}

// splitLines splits on newlines, tolerating CRLF endings.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// isHeader reports whether a trimmed line introduces a section: it
// begins with a colon, or its last colon-delimited segment is empty.
func isHeader(t string) bool {
	if strings.HasPrefix(t, ":") {
		return true
	}
	parts := strings.Split(t, ":")
	return len(parts) >= 2 && parts[len(parts)-1] == ""
}

type section struct {
	anonymous bool
	key       string
	value     *Value
}

func (p *parser) parseDocument() (*Value, error) {
	result := NewObject()

	i := 0
	for i < len(p.lines) {
		t := strings.TrimSpace(p.lines[i])
		if t == "" || strings.HasPrefix(t, "#") || !strings.Contains(t, ":") {
			i++
			continue
		}

		sec, next, err := p.parseSection(i)
		if err != nil {
			return nil, err
		}
		if sec.anonymous {
			// The first top-level anonymous section is the document's
			// result; anything after it is never consulted.
			return sec.value, nil
		}
		result.setMember(sec.key, sec.value)
		i = next
	}

	return result, nil
}

// parseSection interprets the header at line start and all data lines
// belonging to it. It returns the section and the index of the line
// that follows it.
func (p *parser) parseSection(start int) (section, int, error) {
	raw := p.lines[start]
	t := strings.TrimSpace(raw)

	key, anonymous, fieldList, ok := parseHeader(t)
	if !ok {
		return section{}, 0, parseErrorf(start+1, raw, "invalid header format")
	}
	flds, err := fields.Parse(fieldList)
	if err != nil {
		return section{}, 0, parseErrorf(start+1, raw, "%s in field list", err)
	}

	// Collect the section's data lines: everything up to the next
	// header line or end of input, skipping blanks and comments.
	var dataIdx []int
	next := len(p.lines)
	for j := start + 1; j < len(p.lines); j++ {
		lt := strings.TrimSpace(p.lines[j])
		if lt == "" || strings.HasPrefix(lt, "#") {
			continue
		}
		if isHeader(lt) {
			next = j
			break
		}
		dataIdx = append(dataIdx, j)
	}

	if len(flds) == 0 {
		// Single-value section: only the first data line is consulted;
		// any further lines in the section are deliberately ignored.
		if len(dataIdx) == 0 {
			return section{anonymous: anonymous, key: key, value: NewArray()}, next, nil
		}
		j := dataIdx[0]
		v, err := p.parseValue(p.lines[j], j, 0)
		if err != nil {
			return section{}, 0, err
		}
		return section{anonymous: anonymous, key: key, value: v}, next, nil
	}

	recs := make([]*Value, 0, len(dataIdx))
	for _, j := range dataIdx {
		rec, err := p.parseRow(j, flds)
		if err != nil {
			return section{}, 0, err
		}
		recs = append(recs, rec)
	}

	value := &Value{typ: TypeArray, arrVal: recs}
	if anonymous && len(recs) == 1 {
		value = recs[0]
	}
	return section{anonymous: anonymous, key: key, value: value}, next, nil
}

// parseHeader splits a trimmed header line into its name and field
// list. ok is false only when the line holds no colon at all.
func parseHeader(t string) (key string, anonymous bool, fieldList string, ok bool) {
	if strings.HasPrefix(t, ":") {
		return "", true, strings.TrimSpace(strings.Trim(t, ":")), true
	}
	idx := strings.Index(t, ":")
	if idx < 0 {
		return "", false, "", false
	}
	key = scanner.Unescape(strings.TrimSpace(t[:idx]))
	fieldList = strings.TrimSpace(strings.TrimRight(t[idx+1:], ":"))
	return key, false, fieldList, true
}

// parseRow splits one data line positionally against the field list and
// builds a record object in field order.
func (p *parser) parseRow(lineIdx int, flds []fields.Field) (*Value, error) {
	raw := p.lines[lineIdx]
	parts := scanner.SplitTop(strings.TrimSpace(raw))
	if len(parts) != len(flds) {
		return nil, parseErrorf(lineIdx+1, raw, "expected %d values, got %d", len(flds), len(parts))
	}

	obj := NewObject()
	for i, f := range flds {
		v, err := p.parseFieldValue(f, parts[i], lineIdx, 0)
		if err != nil {
			return nil, err
		}
		obj.setMember(f.Name, v)
	}
	return obj, nil
}

// parseFieldValue interprets one cell. For a nested field the cell is a
// parenthesized positional tuple of exactly len(Sub) parts; empty cells
// are null, and array or non-parenthesized cells fall back to the
// generic value grammar.
func (p *parser) parseFieldValue(f fields.Field, s string, lineIdx, depth int) (*Value, error) {
	if !f.Nested() {
		return p.parseValue(s, lineIdx, depth)
	}

	t := strings.TrimSpace(s)
	switch {
	case t == "":
		return NewNull(), nil
	case t == "()":
		return NewObject(), nil
	case strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]"):
		return p.parseValue(t, lineIdx, depth)
	case !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")"):
		return p.parseValue(t, lineIdx, depth)
	}

	if depth >= p.maxDepth {
		return nil, parseErrorf(lineIdx+1, p.lines[lineIdx], "reached max recursion depth")
	}

	parts := scanner.SplitTop(t[1 : len(t)-1])
	if len(parts) != len(f.Sub) {
		return nil, parseErrorf(lineIdx+1, p.lines[lineIdx],
			"expected %d nested values, got %d", len(f.Sub), len(parts))
	}

	obj := NewObject()
	for i, sub := range f.Sub {
		v, err := p.parseFieldValue(sub, parts[i], lineIdx, depth+1)
		if err != nil {
			return nil, err
		}
		obj.setMember(sub.Name, v)
	}
	return obj, nil
}

// parseValue applies the scalar value grammar to an isolated value
// string, in priority order: null, empty array, empty object, array
// literal, inline object literal, then unescaped number, boolean, or
// string.
func (p *parser) parseValue(s string, lineIdx, depth int) (*Value, error) {
	if depth >= p.maxDepth {
		return nil, parseErrorf(lineIdx+1, p.lines[lineIdx], "reached max recursion depth")
	}

	t := strings.TrimSpace(s)
	switch {
	case t == "":
		return NewNull(), nil
	case t == "[]":
		return NewArray(), nil
	case t == "()":
		return NewObject(), nil
	case strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]"):
		return p.parseArray(t[1:len(t)-1], lineIdx, depth+1)
	case strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")"):
		return p.parseInlineObject(t[1:len(t)-1], lineIdx, depth+1)
	}

	un := scanner.Unescape(t)
	if n, err := strconv.ParseFloat(un, 64); err == nil && decimalNumber(un) {
		return NewNumber(n), nil
	}
	switch un {
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	}
	return NewString(un), nil
}

// decimalNumber reports whether s uses only the decimal forms the
// value grammar accepts as numbers. strconv.ParseFloat additionally
// allows Go literal syntax (hex mantissas like 0x1p3, digit
// separators like 1_000), which must stay strings.
func decimalNumber(s string) bool {
	return !strings.ContainsAny(s, "xX_")
}

func (p *parser) parseArray(inner string, lineIdx, depth int) (*Value, error) {
	if strings.TrimSpace(inner) == "" {
		return NewArray(), nil
	}

	parts := scanner.SplitTop(inner)
	elems := make([]*Value, 0, len(parts))
	for i, part := range parts {
		// A trailing comma does not introduce a null element.
		if i == len(parts)-1 && strings.TrimSpace(part) == "" {
			break
		}
		v, err := p.parseValue(part, lineIdx, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return &Value{typ: TypeArray, arrVal: elems}, nil
}

func (p *parser) parseInlineObject(inner string, lineIdx, depth int) (*Value, error) {
	if strings.TrimSpace(inner) == "" {
		return NewObject(), nil
	}

	obj := NewObject()
	parts := scanner.SplitTop(inner)
	for i, part := range parts {
		if i == len(parts)-1 && strings.TrimSpace(part) == "" {
			break
		}
		k, vs, ok := scanner.CutPair(part)
		if !ok {
			// Pairs without a colon carry no key-value binding.
			continue
		}
		v, err := p.parseValue(vs, lineIdx, depth)
		if err != nil {
			return nil, err
		}
		obj.setMember(scanner.Unescape(strings.TrimSpace(k)), v)
	}
	return obj, nil
}

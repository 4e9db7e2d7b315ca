package ort

import (
	"sort"
	"strconv"
	"strings"

	"github.com/BackGwa/go-ort/internal/scanner"
)

// Generate renders v as canonical ORT text. It is total over any
// well-formed Value: there are no failure modes.
//
// Per array, Generate chooses between the tabular form (field header
// plus one positional row per element) and the bracketed literal form.
// An array renders tabularly iff it is non-empty, every element is a
// non-array object, and all elements share one key set.
func Generate(v *Value) []byte {
	return []byte(generateDocument(v))
}

func generateDocument(v *Value) string {
	switch {
	case v == nil || v.IsNull():
		return ""
	case v.IsObject():
		if len(v.keys) != 1 {
			return generateMultiSection(v)
		}
		key := v.keys[0]
		return generateNamedSection(key, v.objVal[key])
	case v.IsArray():
		if isUniformObjectArray(v.arrVal) {
			return generateTabular(":", v.arrVal)
		}
		return ":" + generateValue(v)
	default:
		return generateValue(v)
	}
}

// generateMultiSection renders an object with zero or several keys as a
// multi-section document: one block per entry in key order, blocks
// separated by a blank line.
func generateMultiSection(v *Value) string {
	if len(v.keys) == 0 {
		return ""
	}
	blocks := make([]string, len(v.keys))
	for i, key := range v.keys {
		blocks[i] = strings.TrimRight(generateNamedSection(key, v.objVal[key]), "\n")
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// generateNamedSection renders one "key:" block: tabular for uniform
// object arrays, otherwise the literal form on the following line.
func generateNamedSection(key string, val *Value) string {
	name := scanner.Escape(key)
	if val.IsArray() && isUniformObjectArray(val.arrVal) {
		return generateTabular(name+":", val.arrVal)
	}
	return name + ":\n" + generateValue(val)
}

// isUniformObjectArray reports whether arr is non-empty, holds only
// non-array objects, and all elements share an identical key set. Key
// order is irrelevant to the comparison.
func isUniformObjectArray(arr []*Value) bool {
	if len(arr) == 0 {
		return false
	}
	var first []string
	for i, e := range arr {
		if !e.IsObject() {
			return false
		}
		keys := append([]string(nil), e.keys...)
		sort.Strings(keys)
		if i == 0 {
			first = keys
			continue
		}
		if len(keys) != len(first) {
			return false
		}
		for j := range keys {
			if keys[j] != first[j] {
				return false
			}
		}
	}
	return true
}

// fieldPlan mirrors a header field during generation: a column name
// plus the nested sub-plan for tuple-valued columns.
type fieldPlan struct {
	name string
	sub  []fieldPlan
}

// buildPlan derives the field plan from an element's keys in order,
// recursing into object-valued fields to build nested header groups.
func buildPlan(obj *Value) []fieldPlan {
	plans := make([]fieldPlan, len(obj.keys))
	for i, k := range obj.keys {
		p := fieldPlan{name: k}
		if child := obj.objVal[k]; child.IsObject() {
			p.sub = buildPlan(child)
		}
		plans[i] = p
	}
	return plans
}

func (p fieldPlan) header() string {
	name := scanner.Escape(p.name)
	if p.sub == nil {
		return name
	}
	subs := make([]string, len(p.sub))
	for i, s := range p.sub {
		subs[i] = s.header()
	}
	return name + "(" + strings.Join(subs, ",") + ")"
}

// generateTabular renders a uniform object array under the given header
// prefix (a "name:" or the anonymous ":"). The field list and order
// come from the first element; every row is then rendered name-keyed
// against that plan at every depth, so row-internal key order never
// affects the emitted positional text.
func generateTabular(prefix string, arr []*Value) string {
	plans := buildPlan(arr[0])

	headers := make([]string, len(plans))
	for i, p := range plans {
		headers[i] = p.header()
	}

	lines := make([]string, 0, len(arr)+1)
	lines = append(lines, prefix+strings.Join(headers, ",")+":")
	for _, row := range arr {
		cells := make([]string, len(plans))
		for i, p := range plans {
			cells[i] = renderCell(row.objVal[p.name], p)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

// renderCell renders one row cell against its plan. Null or absent
// fields render empty; an object under a nested plan renders as a
// positional tuple in plan order; everything else falls back to the
// literal form.
func renderCell(v *Value, plan fieldPlan) string {
	if v == nil || v.IsNull() {
		return ""
	}
	if plan.sub != nil && v.IsObject() {
		if len(v.keys) == 0 {
			return "()"
		}
		cells := make([]string, len(plan.sub))
		for i, sub := range plan.sub {
			cells[i] = renderCell(v.objVal[sub.name], sub)
		}
		return "(" + strings.Join(cells, ",") + ")"
	}
	return generateValue(v)
}

// generateValue renders the literal (inline) form of any value.
func generateValue(v *Value) string {
	switch v.typ {
	case TypeNull:
		return ""
	case TypeBool:
		return strconv.FormatBool(v.boolVal)
	case TypeNumber:
		return formatNumber(v.numVal)
	case TypeString:
		return scanner.Escape(v.strVal)
	case TypeArray:
		if len(v.arrVal) == 0 {
			return "[]"
		}
		elems := make([]string, len(v.arrVal))
		for i, e := range v.arrVal {
			elems[i] = generateValue(e)
		}
		return "[" + strings.Join(elems, ",") + "]"
	case TypeObject:
		if len(v.keys) == 0 {
			return "()"
		}
		pairs := make([]string, len(v.keys))
		for i, k := range v.keys {
			pairs[i] = scanner.Escape(k) + ":" + generateValue(v.objVal[k])
		}
		return "(" + strings.Join(pairs, ",") + ")"
	default:
		return ""
	}
}

// formatNumber renders canonical decimal text: integral values print
// without a fractional part and no exponent notation is used.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

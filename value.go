package ort

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type identifies the variant held by a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Errors reported by Value accessors. They are raised per call and are
// recoverable; they never abort unrelated operations.
var (
	ErrNotObject       = errors.New("ort: not an object")
	ErrNotArray        = errors.New("ort: not an array")
	ErrKeyNotFound     = errors.New("ort: key not found")
	ErrIndexOutOfRange = errors.New("ort: index out of range")
	ErrNoLength        = errors.New("ort: value has no length")
)

// Value is an ORT value: null, boolean, number, string, array, or
// object with ordered keys. The zero Value is null.
//
// A Value is always fully normalized: constructing one from nested
// native data converts every contained element, so no variant ever
// holds a foreign payload. Object key order is established by parse or
// insertion order and is preserved through round trips; the generator
// relies on it to rebuild field headers deterministically.
//
// A Value tree is not safe for concurrent mutation; callers sharing one
// across goroutines must synchronize externally.
type Value struct {
	typ     Type
	boolVal bool
	numVal  float64
	strVal  string
	arrVal  []*Value
	keys    []string
	objVal  map[string]*Value
}

// Member is an ordered key-value pair used to build objects with a
// defined key order.
type Member struct {
	Key   string
	Value *Value
}

// NewNull returns a null Value.
func NewNull() *Value { return &Value{typ: TypeNull} }

// NewBool returns a boolean Value.
func NewBool(b bool) *Value { return &Value{typ: TypeBool, boolVal: b} }

// NewNumber returns a numeric Value.
func NewNumber(n float64) *Value { return &Value{typ: TypeNumber, numVal: n} }

// NewString returns a string Value.
func NewString(s string) *Value { return &Value{typ: TypeString, strVal: s} }

// NewArray returns an array Value holding the given elements. Nil
// elements become null.
func NewArray(elems ...*Value) *Value {
	arr := make([]*Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = NewNull()
		}
		arr[i] = e
	}
	return &Value{typ: TypeArray, arrVal: arr}
}

// NewObject returns an object Value with the given members in order.
// A repeated key overwrites the earlier value but keeps its original
// position.
func NewObject(members ...Member) *Value {
	v := &Value{typ: TypeObject, keys: []string{}, objVal: map[string]*Value{}}
	for _, m := range members {
		val := m.Value
		if val == nil {
			val = NewNull()
		}
		v.setMember(m.Key, val)
	}
	return v
}

// FromNative deep-converts native Go data into a normalized Value.
// Accepted shapes: nil, bool, all integer and float kinds, string,
// []any, []*Value, []Member, map[string]any, map[string]*Value, and
// *Value (deep-copied). Go maps carry no insertion order, so map input
// is normalized with sorted keys; use []Member or NewObject when key
// order matters.
func FromNative(v any) (*Value, error) {
	switch n := v.(type) {
	case nil:
		return NewNull(), nil
	case *Value:
		if n == nil {
			return NewNull(), nil
		}
		return n.clone(), nil
	case bool:
		return NewBool(n), nil
	case float64:
		return NewNumber(n), nil
	case float32:
		return NewNumber(float64(n)), nil
	case int:
		return NewNumber(float64(n)), nil
	case int8:
		return NewNumber(float64(n)), nil
	case int16:
		return NewNumber(float64(n)), nil
	case int32:
		return NewNumber(float64(n)), nil
	case int64:
		return NewNumber(float64(n)), nil
	case uint:
		return NewNumber(float64(n)), nil
	case uint8:
		return NewNumber(float64(n)), nil
	case uint16:
		return NewNumber(float64(n)), nil
	case uint32:
		return NewNumber(float64(n)), nil
	case uint64:
		return NewNumber(float64(n)), nil
	case string:
		return NewString(n), nil
	case []*Value:
		elems := make([]*Value, len(n))
		for i, e := range n {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return &Value{typ: TypeArray, arrVal: elems}, nil
	case []any:
		elems := make([]*Value, len(n))
		for i, e := range n {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return &Value{typ: TypeArray, arrVal: elems}, nil
	case []Member:
		obj := NewObject()
		for _, m := range n {
			mv, err := FromNative(m.Value)
			if err != nil {
				return nil, err
			}
			obj.setMember(m.Key, mv)
		}
		return obj, nil
	case map[string]*Value:
		return fromNativeMap(n, func(v *Value) (*Value, error) { return FromNative(v) })
	case map[string]any:
		return fromNativeMap(n, FromNative)
	default:
		return nil, fmt.Errorf("ort: unsupported native type %T", v)
	}
}

func fromNativeMap[V any](m map[string]V, conv func(V) (*Value, error)) (*Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := NewObject()
	for _, k := range keys {
		mv, err := conv(m[k])
		if err != nil {
			return nil, err
		}
		obj.setMember(k, mv)
	}
	return obj, nil
}

// clone returns a deep copy of v.
func (v *Value) clone() *Value {
	c := &Value{typ: v.typ, boolVal: v.boolVal, numVal: v.numVal, strVal: v.strVal}
	switch v.typ {
	case TypeArray:
		c.arrVal = make([]*Value, len(v.arrVal))
		for i, e := range v.arrVal {
			c.arrVal[i] = e.clone()
		}
	case TypeObject:
		c.keys = append([]string(nil), v.keys...)
		c.objVal = make(map[string]*Value, len(v.objVal))
		for k, e := range v.objVal {
			c.objVal[k] = e.clone()
		}
	}
	return c
}

// setMember inserts or overwrites a key, preserving first-insertion
// position for existing keys.
func (v *Value) setMember(key string, val *Value) {
	if _, ok := v.objVal[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.objVal[key] = val
}

// Type returns the variant tag.
func (v *Value) Type() Type { return v.typ }

// IsNull reports whether the value is null.
func (v *Value) IsNull() bool { return v.typ == TypeNull }

// IsBool reports whether the value is a boolean.
func (v *Value) IsBool() bool { return v.typ == TypeBool }

// IsNumber reports whether the value is a number.
func (v *Value) IsNumber() bool { return v.typ == TypeNumber }

// IsString reports whether the value is a string.
func (v *Value) IsString() bool { return v.typ == TypeString }

// IsArray reports whether the value is an array.
func (v *Value) IsArray() bool { return v.typ == TypeArray }

// IsObject reports whether the value is an object.
func (v *Value) IsObject() bool { return v.typ == TypeObject }

// AsBool returns the boolean payload. The second result is false when
// the value is not a boolean; there is no coercion.
func (v *Value) AsBool() (bool, bool) {
	if v.typ != TypeBool {
		return false, false
	}
	return v.boolVal, true
}

// AsNumber returns the numeric payload, or false if the value is not a
// number.
func (v *Value) AsNumber() (float64, bool) {
	if v.typ != TypeNumber {
		return 0, false
	}
	return v.numVal, true
}

// AsString returns the string payload, or false if the value is not a
// string.
func (v *Value) AsString() (string, bool) {
	if v.typ != TypeString {
		return "", false
	}
	return v.strVal, true
}

// AsArray returns the element slice, or false if the value is not an
// array. The slice is a view onto the value's own storage.
func (v *Value) AsArray() ([]*Value, bool) {
	if v.typ != TypeArray {
		return nil, false
	}
	return v.arrVal, true
}

// AsObject returns the members in key order, or false if the value is
// not an object.
func (v *Value) AsObject() ([]Member, bool) {
	if v.typ != TypeObject {
		return nil, false
	}
	members := make([]Member, len(v.keys))
	for i, k := range v.keys {
		members[i] = Member{Key: k, Value: v.objVal[k]}
	}
	return members, true
}

// Keys returns the object's keys in order, or nil for non-objects.
func (v *Value) Keys() []string {
	if v.typ != TypeObject {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Get returns the value stored under key. It fails with ErrNotObject
// for non-objects and ErrKeyNotFound for unknown keys.
func (v *Value) Get(key string) (*Value, error) {
	if v.typ != TypeObject {
		return nil, fmt.Errorf("%w: cannot get key %q from %s value", ErrNotObject, key, v.typ)
	}
	val, ok := v.objVal[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return val, nil
}

// Index returns the i-th element. It fails with ErrNotArray for
// non-arrays and ErrIndexOutOfRange when i is out of bounds.
func (v *Value) Index(i int) (*Value, error) {
	if v.typ != TypeArray {
		return nil, fmt.Errorf("%w: cannot index %s value", ErrNotArray, v.typ)
	}
	if i < 0 || i >= len(v.arrVal) {
		return nil, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(v.arrVal))
	}
	return v.arrVal[i], nil
}

// GetOr returns the value stored under key, or def normalized to a
// Value when the receiver is not an object or the key is absent. It
// never fails; an unconvertible default yields null.
func (v *Value) GetOr(key string, def any) *Value {
	if v.typ == TypeObject {
		if val, ok := v.objVal[key]; ok {
			return val
		}
	}
	dv, err := FromNative(def)
	if err != nil {
		return NewNull()
	}
	return dv
}

// Set stores val (normalized) under key. Objects may gain new keys; a
// *Value payload is deep-copied so later mutation of the source cannot
// alias into the receiver.
func (v *Value) Set(key string, val any) error {
	if v.typ != TypeObject {
		return fmt.Errorf("%w: cannot set key %q on %s value", ErrNotObject, key, v.typ)
	}
	nv, err := FromNative(val)
	if err != nil {
		return err
	}
	v.setMember(key, nv)
	return nil
}

// SetIndex replaces the i-th element with val (normalized). Arrays may
// not be grown through SetIndex; the index must already exist.
func (v *Value) SetIndex(i int, val any) error {
	if v.typ != TypeArray {
		return fmt.Errorf("%w: cannot set index %d on %s value", ErrNotArray, i, v.typ)
	}
	if i < 0 || i >= len(v.arrVal) {
		return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(v.arrVal))
	}
	nv, err := FromNative(val)
	if err != nil {
		return err
	}
	v.arrVal[i] = nv
	return nil
}

// Len returns the element count for arrays and objects and fails with
// ErrNoLength for scalars.
func (v *Value) Len() (int, error) {
	switch v.typ {
	case TypeArray:
		return len(v.arrVal), nil
	case TypeObject:
		return len(v.keys), nil
	default:
		return 0, fmt.Errorf("%w: %s value", ErrNoLength, v.typ)
	}
}

// ToNative deep-converts the value to plain Go data: nil, bool,
// float64, string, []any, or map[string]any. Object key order is not
// representable in a Go map; use AsObject when order matters.
func (v *Value) ToNative() any {
	switch v.typ {
	case TypeNull:
		return nil
	case TypeBool:
		return v.boolVal
	case TypeNumber:
		return v.numVal
	case TypeString:
		return v.strVal
	case TypeArray:
		out := make([]any, len(v.arrVal))
		for i, e := range v.arrVal {
			out[i] = e.ToNative()
		}
		return out
	case TypeObject:
		out := make(map[string]any, len(v.keys))
		for k, e := range v.objVal {
			out[k] = e.ToNative()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep structural equality. Arrays compare element by
// element in order; objects compare as sets of key-value pairs, so two
// objects with the same pairs in different key order are equal.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.boolVal == o.boolVal
	case TypeNumber:
		return v.numVal == o.numVal
	case TypeString:
		return v.strVal == o.strVal
	case TypeArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if len(v.keys) != len(o.keys) {
			return false
		}
		for k, e := range v.objVal {
			oe, ok := o.objVal[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a JSON-flavored debug rendering. It is not ORT text;
// use Generate for that.
func (v *Value) String() string {
	switch v.typ {
	case TypeNull:
		return "null"
	case TypeBool:
		return strconv.FormatBool(v.boolVal)
	case TypeNumber:
		return formatNumber(v.numVal)
	case TypeString:
		return strconv.Quote(v.strVal)
	case TypeArray:
		parts := make([]string, len(v.arrVal))
		for i, e := range v.arrVal {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeObject:
		parts := make([]string, len(v.keys))
		for i, k := range v.keys {
			parts[i] = strconv.Quote(k) + ": " + v.objVal[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "unknown"
	}
}

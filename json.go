package ort

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// JSON interchange for ORT values. Both directions go through
// json-iterator's stream and iterator primitives rather than Go maps,
// so object key order survives the conversion in both directions.

var (
	jsonCompact = jsoniter.ConfigCompatibleWithStandardLibrary
	jsonIndent  = jsoniter.Config{
		EscapeHTML:    false,
		IndentionStep: 2,
	}.Froze()
)

// ToJSON renders v as compact JSON, preserving object key order.
func ToJSON(v *Value) ([]byte, error) {
	return marshalJSON(jsonCompact, v)
}

// ToJSONIndent renders v as two-space indented JSON, preserving object
// key order.
func ToJSONIndent(v *Value) ([]byte, error) {
	return marshalJSON(jsonIndent, v)
}

func marshalJSON(api jsoniter.API, v *Value) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	writeJSON(stream, v)
	if stream.Error != nil {
		return nil, fmt.Errorf("ort: encode json: %w", stream.Error)
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

func writeJSON(stream *jsoniter.Stream, v *Value) {
	if v == nil {
		stream.WriteNil()
		return
	}
	switch v.typ {
	case TypeNull:
		stream.WriteNil()
	case TypeBool:
		stream.WriteBool(v.boolVal)
	case TypeNumber:
		stream.WriteFloat64(v.numVal)
	case TypeString:
		stream.WriteString(v.strVal)
	case TypeArray:
		stream.WriteArrayStart()
		for i, e := range v.arrVal {
			if i > 0 {
				stream.WriteMore()
			}
			writeJSON(stream, e)
		}
		stream.WriteArrayEnd()
	case TypeObject:
		stream.WriteObjectStart()
		for i, k := range v.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeJSON(stream, v.objVal[k])
		}
		stream.WriteObjectEnd()
	}
}

// FromJSON parses JSON into a normalized Value, preserving object key
// order. JSON numbers become Number values; there is no integer
// distinction, matching the ORT data model.
func FromJSON(data []byte) (*Value, error) {
	iter := jsoniter.ParseBytes(jsonCompact, data)
	v := readJSON(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("ort: decode json: %w", iter.Error)
	}
	// A document holds exactly one top-level value; anything but
	// whitespace after it is an error. At a clean end of input
	// WhatIsNext reports InvalidValue with io.EOF set.
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		return nil, fmt.Errorf("ort: decode json: trailing data after top-level value")
	}
	return v, nil
}

func readJSON(iter *jsoniter.Iterator) *Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return NewNull()
	case jsoniter.BoolValue:
		return NewBool(iter.ReadBool())
	case jsoniter.NumberValue:
		return NewNumber(iter.ReadFloat64())
	case jsoniter.StringValue:
		return NewString(iter.ReadString())
	case jsoniter.ArrayValue:
		var elems []*Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			elems = append(elems, readJSON(it))
			return true
		})
		return &Value{typ: TypeArray, arrVal: elems}
	case jsoniter.ObjectValue:
		obj := NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.setMember(key, readJSON(it))
			return true
		})
		return obj
	default:
		iter.ReportError("readJSON", "unexpected JSON value")
		return NewNull()
	}
}

package ort

import (
	"fmt"
	"io"
)

// Decoder reads an ORT document from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// Functional options can be provided to configure parsing, such as
// setting a maximum nesting depth with MaxDepth.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the ORT document from its input and returns its value.
//
// Note: this is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode() (*Value, error) {
	if d.r == nil {
		return nil, fmt.Errorf("ort: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	return Parse(data, d.opts...)
}

// Encoder writes ORT documents to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the canonical ORT encoding of v to the stream.
func (e *Encoder) Encode(v *Value) error {
	if e.w == nil {
		return fmt.Errorf("ort: Encode(nil writer)")
	}
	_, err := e.w.Write(Generate(v))
	return err
}

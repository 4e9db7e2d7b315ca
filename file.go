package ort

import (
	"fmt"
	"os"
)

// ParseFile reads the UTF-8 file at path and parses it as an ORT
// document. It is a thin wrapper around Parse with no format-specific
// logic of its own.
func ParseFile(path string, opts ...Option) (*Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ort: read %s: %w", path, err)
	}
	return Parse(data, opts...)
}

// WriteFile generates the canonical ORT text for v and writes it to
// path, creating or truncating the file.
func WriteFile(path string, v *Value) error {
	if err := os.WriteFile(path, Generate(v), 0o644); err != nil {
		return fmt.Errorf("ort: write %s: %w", path, err)
	}
	return nil
}

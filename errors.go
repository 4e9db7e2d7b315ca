package ort

import "fmt"

// A ParseError describes a fatal error encountered while parsing an ORT
// document. It carries the 1-based source line number and the raw,
// untrimmed line text so editors can jump to the fault. No partial
// document is returned alongside a ParseError.
type ParseError struct {
	Line    int
	Src     string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ort: line %d: %s", e.Line, e.Message)
}

// parseErrorf builds a ParseError for the given 1-based line.
func parseErrorf(line int, src, format string, args ...any) *ParseError {
	return &ParseError{
		Line:    line,
		Src:     src,
		Message: fmt.Sprintf(format, args...),
	}
}

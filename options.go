package ort

import "fmt"

const defaultMaxDepth = 1000

type options struct {
	maxDepth int
}

// Option configures parsing.
type Option func(*options) error

// MaxDepth returns an Option that sets the maximum nesting depth for
// value grammar recursion. This guards against stack exhaustion on
// pathologically nested inputs.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("ort: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

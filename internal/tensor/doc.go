// Package tensor provides the string tensor value type used throughout
// textboard.
//
// This package contains value types and shape arithmetic only. All other
// internal packages import tensor; tensor imports nothing internal. This
// keeps it the foundational layer with no circular dependencies.
//
// A Strings value is immutable by convention: once read from a source it is
// never mutated, only sliced. Dims describe the shape, Values hold the
// elements flattened in row-major order. Rank 0 is a scalar with exactly one
// element and an empty Dims slice.
package tensor

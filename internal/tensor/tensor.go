package tensor

import "fmt"

// Strings is an arbitrary-rank tensor of UTF-8 strings.
//
// Values are flattened in row-major order: for a rank-2 tensor the element
// at row r, column c lives at Values[r*Dims[1]+c]. A scalar has Dims of
// length zero and exactly one value.
type Strings struct {
	Dims   []int
	Values []string
}

// New constructs a Strings tensor and validates that the value count matches
// the product of the axis lengths.
func New(dims []int, values []string) (Strings, error) {
	n := 1
	for i, d := range dims {
		if d < 0 {
			return Strings{}, fmt.Errorf("tensor: axis %d has negative length %d", i, d)
		}
		n *= d
	}
	if len(values) != n {
		return Strings{}, fmt.Errorf("tensor: shape %v requires %d values, got %d", dims, n, len(values))
	}
	return Strings{Dims: dims, Values: values}, nil
}

// Scalar wraps a single string as a rank-0 tensor.
func Scalar(s string) Strings {
	return Strings{Values: []string{s}}
}

// Vector wraps a flat string slice as a rank-1 tensor.
func Vector(values ...string) Strings {
	return Strings{Dims: []int{len(values)}, Values: values}
}

// Rank returns the number of axes. Scalars have rank 0.
func (t Strings) Rank() int {
	return len(t.Dims)
}

// Len returns the total element count (the product of all axis lengths).
func (t Strings) Len() int {
	n := 1
	for _, d := range t.Dims {
		n *= d
	}
	return n
}

// Dim returns the length of axis i.
func (t Strings) Dim(i int) int {
	return t.Dims[i]
}

// Row returns row r of a rank-2 tensor as a slice aliasing the underlying
// values. Callers must not mutate the result.
func (t Strings) Row(r int) []string {
	cols := t.Dims[1]
	return t.Values[r*cols : (r+1)*cols]
}

// first slices off the leading axis, keeping index 0. A zero-length leading
// axis produces an empty tensor whose new leading axis is forced to zero so
// that Dims and Values stay consistent.
func (t Strings) first() Strings {
	rest := t.Dims[1:]
	if t.Dims[0] == 0 {
		dims := make([]int, len(rest))
		copy(dims, rest)
		if len(dims) > 0 {
			dims[0] = 0
		}
		return Strings{Dims: dims}
	}
	block := 1
	for _, d := range rest {
		block *= d
	}
	return Strings{Dims: rest, Values: t.Values[:block]}
}

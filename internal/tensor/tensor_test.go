package tensor

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rangeTensor builds a tensor with the given rank, each axis of length 2,
// holding the decimal strings "0".."2^rank-1" in row-major order.
func rangeTensor(rank int) Strings {
	dims := make([]int, rank)
	n := 1
	for i := range dims {
		dims[i] = 2
		n *= 2
	}
	values := make([]string, n)
	for i := range values {
		values[i] = strconv.Itoa(i)
	}
	return Strings{Dims: dims, Values: values}
}

func TestNewValidatesShape(t *testing.T) {
	got, err := New([]int{2, 3}, []string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rank())
	assert.Equal(t, 6, got.Len())

	_, err = New([]int{2, 3}, []string{"a"})
	assert.Error(t, err)

	_, err = New([]int{-1}, nil)
	assert.Error(t, err)
}

func TestScalar(t *testing.T) {
	s := Scalar("foo")
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"foo"}, s.Values)
}

func TestRow(t *testing.T) {
	m, err := New([]int{2, 2}, []string{"one", "two", "three", "four"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, m.Row(0))
	assert.Equal(t, []string{"three", "four"}, m.Row(1))
}

func TestReduceTo2DRank2Unchanged(t *testing.T) {
	in := rangeTensor(2)
	out, truncated, err := ReduceTo2D(in)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, in, out)
}

func TestReduceTo2DFirstSlice(t *testing.T) {
	// For every rank r >= 2, the result is the first 2-D slice: the last two
	// axes of the input, holding the first block of values.
	for rank := 2; rank <= 5; rank++ {
		in := rangeTensor(rank)
		out, truncated, err := ReduceTo2D(in)
		require.NoError(t, err)
		assert.Equal(t, rank > 2, truncated, "rank %d", rank)
		assert.Equal(t, []int{2, 2}, out.Dims, "rank %d", rank)
		assert.Equal(t, []string{"0", "1", "2", "3"}, out.Values, "rank %d", rank)
	}
}

func TestReduceTo2DRejectsLowRank(t *testing.T) {
	_, _, err := ReduceTo2D(Scalar("x"))
	assert.Error(t, err)

	_, _, err = ReduceTo2D(Vector("a", "b"))
	assert.Error(t, err)
}

func TestReduceTo2DZeroAxis(t *testing.T) {
	// A zero-length axis anywhere yields an empty 2-D tensor.
	leading, err := New([]int{0, 2, 2}, nil)
	require.NoError(t, err)
	out, truncated, err := ReduceTo2D(leading)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, 2, out.Rank())
	assert.Equal(t, 0, out.Len())

	middle, err := New([]int{2, 0, 2}, nil)
	require.NoError(t, err)
	out, _, err = ReduceTo2D(middle)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rank())
	assert.Equal(t, 0, out.Len())
}

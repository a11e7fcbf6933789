package evaluator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinationsCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n, k int
		want int
	}{
		{5, 5, 1},
		{6, 5, 6},
		{7, 5, 21},
		{52, 5, 2598960},
		{4, 5, 0},
		{3, 0, 1},
	}

	for _, tt := range tests {
		count := 0
		for range Combinations(tt.n, tt.k) {
			count++
		}
		assert.Equal(t, tt.want, count, "C(%d,%d)", tt.n, tt.k)
		assert.Equal(t, tt.want, Binomial(tt.n, tt.k), "Binomial(%d,%d)", tt.n, tt.k)
	}
}

func TestCombinationsOrderAndUniqueness(t *testing.T) {
	t.Parallel()

	var got [][]int
	for idx := range Combinations(5, 3) {
		got = append(got, slices.Clone(idx))
	}

	want := [][]int{
		{0, 1, 2}, {0, 1, 3}, {0, 1, 4}, {0, 2, 3}, {0, 2, 4},
		{0, 3, 4}, {1, 2, 3}, {1, 2, 4}, {1, 3, 4}, {2, 3, 4},
	}
	require.Equal(t, want, got)
}

func TestCombinationsRestartable(t *testing.T) {
	t.Parallel()

	seq := Combinations(7, 5)
	first := make([][]int, 0, 21)
	for idx := range seq {
		first = append(first, slices.Clone(idx))
	}
	second := make([][]int, 0, 21)
	for idx := range seq {
		second = append(second, slices.Clone(idx))
	}
	assert.Equal(t, first, second)
}

func TestCombinationsEarlyStop(t *testing.T) {
	t.Parallel()

	count := 0
	for range Combinations(10, 5) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

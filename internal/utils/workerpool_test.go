package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelMap(t *testing.T) {
	t.Parallel()

	double := func(ctx context.Context, item int) (int, error) {
		return item * 2, nil
	}

	t.Run("results keep item order", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5, 6, 7, 8}
		results, errs := ParallelMap(context.Background(), items, 3, double)

		assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14, 16}, results)
		assert.NoError(t, FirstError(errs))
	})

	t.Run("empty items", func(t *testing.T) {
		results, errs := ParallelMap(context.Background(), []int{}, 3, double)
		assert.Empty(t, results)
		assert.Empty(t, errs)
	})

	t.Run("errors stay with their item", func(t *testing.T) {
		results, errs := ParallelMap(context.Background(), []int{1, 2, 3}, 2, func(ctx context.Context, item int) (int, error) {
			if item == 2 {
				return 0, errors.New("error on 2")
			}
			return item, nil
		})

		require.Len(t, errs, 3)
		assert.NoError(t, errs[0])
		assert.EqualError(t, errs[1], "error on 2")
		assert.NoError(t, errs[2])
		assert.Equal(t, []int{1, 0, 3}, results)
	})

	t.Run("zero workers defaults to 1", func(t *testing.T) {
		results, errs := ParallelMap(context.Background(), []int{1, 2}, 0, double)
		assert.Equal(t, []int{2, 4}, results)
		assert.NoError(t, FirstError(errs))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls atomic.Int32
		_, errs := ParallelMap(ctx, []int{1, 2, 3}, 2, func(ctx context.Context, item int) (int, error) {
			calls.Add(1)
			return item, ctx.Err()
		})

		require.Len(t, errs, 3)
		for _, err := range errs {
			assert.ErrorIs(t, err, context.Canceled)
		}
	})
}

func TestFirstError(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	tests := []struct {
		name     string
		errs     []error
		expected error
	}{
		{name: "nil slice", errs: nil, expected: nil},
		{name: "all nil", errs: []error{nil, nil}, expected: nil},
		{name: "first non-nil", errs: []error{nil, first, errors.New("second")}, expected: first},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstError(tt.errs))
		})
	}
}

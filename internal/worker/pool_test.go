package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Pool:
// - Results keep input order regardless of completion order
// - Per-task errors are kept alongside the other results
// - The progress callback fires once per task
// - A cancelled context marks unstarted tasks with ctx.Err()
// - Batch splits into chunks with a short tail

func TestPool_PreservesOrder(t *testing.T) {
	t.Parallel()

	inputs := []int{5, 1, 4, 2, 3}
	pool := NewPool(3, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	results := pool.Execute(context.Background(), inputs)
	require.Len(t, results, len(inputs))
	for i, r := range results {
		assert.Equal(t, inputs[i], r.Input)
		assert.Equal(t, inputs[i]*10, r.Result)
		assert.NoError(t, r.Err)
	}
}

func TestPool_ErrorsAndProgress(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var calls atomic.Int32
	pool := NewPool(2, func(_ context.Context, s string) (int, error) {
		if s == "bad" {
			return 0, boom
		}
		return len(s), nil
	}, WithProgress[string, int](func() { calls.Add(1) }))

	results := pool.Execute(context.Background(), []string{"a", "bad", "ccc"})

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1, results[0].Result)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 3, results[2].Result)
}

func TestPool_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	pool := NewPool(0, func(_ context.Context, n int) (int, error) {
		ran.Add(1)
		return n, nil
	})

	results := pool.Execute(ctx, []int{1, 2, 3})
	require.Len(t, results, 3)

	assert.Equal(t, int32(0), ran.Load())
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestBatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, Batch([]int{1, 2}, 0))
	assert.Nil(t, Batch([]int{}, 3))
}

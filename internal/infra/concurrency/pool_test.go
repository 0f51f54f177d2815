package concurrency

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antimoji/emojify/internal/types"
)

func TestNewWorkerPool(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{name: "explicit size", size: 4, expected: 4},
		{name: "zero uses CPU count", size: 0, expected: min(runtime.NumCPU(), maxWorkers)},
		{name: "negative becomes one", size: -3, expected: 1},
		{name: "capped", size: 1000, expected: maxWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewWorkerPool(tt.size).Size())
		})
	}
}

func TestMap_PreservesOrder(t *testing.T) {
	pool := NewWorkerPool(4)
	inputs := make([]int, 50)
	for i := range inputs {
		inputs[i] = i
	}

	results := Map(context.Background(), pool, inputs, func(_ context.Context, n int) types.Result[string] {
		// later inputs finish first
		time.Sleep(time.Duration(50-n) * 100 * time.Microsecond)
		return types.Ok(fmt.Sprintf("item-%d", n))
	})

	require.Len(t, results, len(inputs))
	for i, result := range results {
		require.True(t, result.IsOk())
		assert.Equal(t, fmt.Sprintf("item-%d", i), result.Unwrap())
	}
	assert.Equal(t, len(inputs), pool.ProcessedJobs())
	assert.Zero(t, pool.ActiveWorkers())
}

func TestMap_ReportsPerItemErrors(t *testing.T) {
	pool := NewWorkerPool(2)
	boom := errors.New("boom")

	results := Map(context.Background(), pool, []string{"a", "bad", "c"}, func(_ context.Context, s string) types.Result[string] {
		if s == "bad" {
			return types.Err[string](boom)
		}
		return types.Ok(s)
	})

	assert.True(t, results[0].IsOk())
	assert.ErrorIs(t, results[1].Error(), boom)
	assert.Equal(t, "c", results[2].Unwrap())
}

func TestMap_BoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(3)
	var running, peak atomic.Int32

	Map(context.Background(), pool, make([]struct{}, 30), func(_ context.Context, _ struct{}) types.Result[int] {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return types.Ok(0)
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestMap_CancellationStopsScheduling(t *testing.T) {
	pool := NewWorkerPool(1)
	ctx, cancel := context.WithCancel(context.Background())

	results := Map(ctx, pool, []int{0, 1, 2, 3}, func(_ context.Context, n int) types.Result[int] {
		if n == 1 {
			cancel()
		}
		return types.Ok(n)
	})

	assert.True(t, results[0].IsOk())
	assert.True(t, results[1].IsOk())
	assert.ErrorIs(t, results[2].Error(), context.Canceled)
	assert.ErrorIs(t, results[3].Error(), context.Canceled)
}

func TestMap_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32

	results := Map(ctx, NewWorkerPool(2), []int{1, 2}, func(_ context.Context, n int) types.Result[int] {
		calls.Add(1)
		return types.Ok(n)
	})

	assert.Zero(t, calls.Load())
	for _, result := range results {
		assert.ErrorIs(t, result.Error(), context.Canceled)
	}
}

func TestMap_Empty(t *testing.T) {
	results := Map(context.Background(), NewWorkerPool(2), nil, func(_ context.Context, n int) types.Result[int] {
		return types.Ok(n)
	})
	assert.Empty(t, results)
}

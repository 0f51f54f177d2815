// Package concurrency runs independent render jobs on a bounded set of workers.
package concurrency

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/antimoji/emojify/internal/types"
)

// maxWorkers caps the pool size regardless of configuration.
const maxWorkers = 64

// WorkerPool bounds how many jobs run at once. A pool may be reused for
// several Map calls; each call starts and stops its own workers.
type WorkerPool struct {
	size          int
	activeWorkers atomic.Int32
	processedJobs atomic.Int64
}

// NewWorkerPool creates a pool of size workers. Zero means one worker per CPU
// and negative sizes are treated as one.
func NewWorkerPool(size int) *WorkerPool {
	switch {
	case size < 0:
		size = 1
	case size == 0:
		size = runtime.NumCPU()
	}
	if size > maxWorkers {
		size = maxWorkers
	}
	return &WorkerPool{size: size}
}

// Size returns the number of workers in the pool.
func (wp *WorkerPool) Size() int {
	return wp.size
}

// ActiveWorkers returns how many workers are currently running.
func (wp *WorkerPool) ActiveWorkers() int {
	return int(wp.activeWorkers.Load())
}

// ProcessedJobs returns the total number of jobs that ran to completion.
func (wp *WorkerPool) ProcessedJobs() int {
	return int(wp.processedJobs.Load())
}

// Map applies fn to every input on the pool's workers and returns the
// results in input order. Once ctx is done no further jobs are started, and
// every job that never ran reports ctx.Err().
func Map[In, Out any](ctx context.Context, wp *WorkerPool, inputs []In,
	fn func(context.Context, In) types.Result[Out]) []types.Result[Out] {
	results := make([]types.Result[Out], len(inputs))
	if len(inputs) == 0 {
		return results
	}

	started := make([]bool, len(inputs))
	jobs := make(chan int)

	workers := min(wp.size, len(inputs))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			wp.activeWorkers.Add(1)
			defer wp.activeWorkers.Add(-1)

			for i := range jobs {
				results[i] = fn(ctx, inputs[i])
				wp.processedJobs.Add(1)
			}
		}()
	}

schedule:
	for i := range inputs {
		// checked first so a cancelled context never races a ready worker
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- i:
			started[i] = true
		case <-ctx.Done():
			break schedule
		}
	}
	close(jobs)
	wg.Wait()

	for i, ok := range started {
		if !ok {
			results[i] = types.Err[Out](ctx.Err())
		}
	}
	return results
}

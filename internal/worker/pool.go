package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task holds one input and the outcome of processing it.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc is the function signature for processing a single task.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers  int
	process  ProcessFunc[T, R]
	progress func()
}

// Option configures a Pool.
type Option[T any, R any] func(*Pool[T, R])

// WithProgress registers a callback invoked once per finished task. It may be
// called from several goroutines at once.
func WithProgress[T any, R any](fn func()) Option[T, R] {
	return func(p *Pool[T, R]) { p.progress = fn }
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R], opts ...Option[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	p := &Pool[T, R]{
		workers: workers,
		process: fn,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs all inputs through the pool. Results keep the order of inputs.
// Inputs not started before ctx is cancelled get ctx.Err() as their error.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	done := make([]bool, len(inputs))
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				if ctx.Err() != nil {
					continue
				}
				result, err := p.process(ctx, inputs[idx])
				results[idx] = Task[T, R]{Input: inputs[idx], Result: result, Err: err}
				done[idx] = true
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
				if p.progress != nil {
					p.progress()
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
		}
	}
	close(inputCh)
	wg.Wait()

	for i := range results {
		if !done[i] {
			results[i] = Task[T, R]{Input: inputs[i], Err: ctx.Err()}
		}
	}
	return results
}

// Batch splits items into consecutive chunks of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

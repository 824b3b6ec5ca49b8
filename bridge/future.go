package bridge

import (
	"context"
	"sync"

	"github.com/n-r-w/asyncdb"
)

type futureState int

const (
	futurePending futureState = iota
	futureQueued
	futureRunning
	futureDone
)

// Future deferred single result of a function executed on a WorkerPool.
// Nothing is submitted until Start or Await is called. The function runs at most once.
type Future[T any] struct {
	pool *WorkerPool
	fn   func(ctx context.Context) (T, error)

	mu    sync.Mutex
	state futureState
	done  chan struct{}
	value T
	err   error
}

// NewFuture returns a lazy future for fn.
func NewFuture[T any](pool *WorkerPool, fn func(ctx context.Context) (T, error)) *Future[T] {
	return &Future[T]{
		pool: pool,
		fn:   fn,
		done: make(chan struct{}),
	}
}

// Start submits the function if it has not been submitted yet.
// A rejected submission completes the future with *asyncdb.SubmissionError.
func (f *Future[T]) Start(ctx context.Context) *Future[T] {
	f.mu.Lock()
	if f.state != futurePending {
		f.mu.Unlock()
		return f
	}
	f.state = futureQueued
	f.mu.Unlock()

	if err := f.pool.Submit(ctx, f.run); err != nil {
		var zero T
		f.complete(zero, err)
	}

	return f
}

// Await starts the future and waits for the result or for ctx to be done.
// ctx cancellation stops waiting only, the work keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	f.Start(ctx)

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel prevents execution if the function has not started yet.
// Returns true if the future was cancelled, and completes it with asyncdb.ErrCancelled.
func (f *Future[T]) Cancel() bool {
	f.mu.Lock()
	if f.state != futurePending && f.state != futureQueued {
		f.mu.Unlock()
		return false
	}
	f.state = futureDone
	f.err = asyncdb.ErrCancelled
	f.mu.Unlock()

	close(f.done)
	return true
}

func (f *Future[T]) run(ctx context.Context) {
	f.mu.Lock()
	if f.state != futureQueued {
		f.mu.Unlock()
		return
	}
	f.state = futureRunning
	f.mu.Unlock()

	value, err := callRecover(ctx, f.fn)
	f.complete(value, err)
}

func (f *Future[T]) complete(value T, err error) {
	f.mu.Lock()
	if f.state == futureDone {
		f.mu.Unlock()
		return
	}
	f.state = futureDone
	f.value = value
	f.err = err
	f.mu.Unlock()

	close(f.done)
}

// callRecover calls fn and converts a panic to *asyncdb.PanicError.
func callRecover[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value = zero
			err = &asyncdb.PanicError{Value: r}
		}
	}()

	return fn(ctx)
}

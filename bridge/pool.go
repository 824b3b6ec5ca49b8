// Package bridge adapts blocking work to asynchronous consumers: a bounded worker pool,
// single-value futures and multi-value sequences with bounded buffering.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/n-r-w/asyncdb"
)

// Task unit of work executed by a pool worker.
type Task func(ctx context.Context)

// WorkerPool runs at most size tasks at a time on a pond pool.
// Submission never blocks: tasks wait in the pool's unbounded queue until a worker is free.
type WorkerPool struct {
	size   int
	logger asyncdb.ILogger
	pool   pond.Pool

	mu       sync.RWMutex
	closed   bool
	stopOnce sync.Once
	stopped  pond.Task

	inFlight atomic.Int64
	peak     atomic.Int64
}

// PoolOption option for WorkerPool.
type PoolOption func(*WorkerPool)

// WithPoolLogger sets the logger used for task panics.
func WithPoolLogger(logger asyncdb.ILogger) PoolOption {
	return func(p *WorkerPool) {
		p.logger = logger
	}
}

// NewWorkerPool creates a pool of size workers.
func NewWorkerPool(size int, opts ...PoolOption) (*WorkerPool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: worker pool size must be positive, got %d", asyncdb.ErrInvalidConfiguration, size)
	}

	p := &WorkerPool{
		size: size,
		pool: pond.NewPool(size),
	}

	for _, o := range opts {
		o(p)
	}
	p.logger = asyncdb.LoggerOrNop(p.logger)

	return p, nil
}

// Submit queues the task. The task receives ctx without its cancellation.
// Returns *asyncdb.SubmissionError once the pool is closed.
func (p *WorkerPool) Submit(ctx context.Context, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return &asyncdb.SubmissionError{Err: asyncdb.ErrPoolClosed}
	}

	ctx = context.WithoutCancel(ctx)
	p.pool.Submit(func() {
		p.run(ctx, task)
	})

	return nil
}

// Close stops accepting tasks and waits until queued and running tasks are finished
// or ctx is done. Repeated calls only wait.
func (p *WorkerPool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.stopOnce.Do(func() {
		p.stopped = p.pool.Stop()
	})

	select {
	case <-p.stopped.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("close worker pool: %w", ctx.Err())
	}
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.size
}

// InFlight returns the number of tasks being executed.
func (p *WorkerPool) InFlight() int {
	return int(p.inFlight.Load())
}

// Peak returns the maximum number of simultaneously executed tasks.
func (p *WorkerPool) Peak() int {
	return int(p.peak.Load())
}

// Queued returns the number of tasks waiting for a worker.
func (p *WorkerPool) Queued() int {
	return int(p.pool.WaitingTasks())
}

// Submitted returns the number of tasks accepted since the pool was created.
func (p *WorkerPool) Submitted() int {
	return int(p.pool.SubmittedTasks())
}

// IsClosed returns true after Close.
func (p *WorkerPool) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.closed
}

func (p *WorkerPool) run(ctx context.Context, task Task) {
	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)

	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf(ctx, "worker pool task panic: %v", r)
		}
	}()

	task(ctx)
}

package bridge

import (
	"context"
	"iter"
	"sync"

	"github.com/n-r-w/asyncdb"
)

// DefaultBuffer number of items buffered between producer and consumer when not set.
const DefaultBuffer = 5

// Producer pushes items to the sink and finishes with exactly one of Complete or Error.
type Producer[T any] func(ctx context.Context, sink asyncdb.ISink[T])

// Sequence lazily produced stream of items. Every subscription runs the producer anew on the pool.
type Sequence[T any] struct {
	pool    *WorkerPool
	buffer  int
	produce Producer[T]
}

// NewSequence returns a sequence whose producer runs on pool.
// The producer blocks once buffer items are waiting for the consumer.
func NewSequence[T any](pool *WorkerPool, buffer int, produce Producer[T]) *Sequence[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Sequence[T]{
		pool:    pool,
		buffer:  buffer,
		produce: produce,
	}
}

// Subscribe submits a new execution of the producer.
// A rejected submission terminates the subscription with *asyncdb.SubmissionError.
func (s *Sequence[T]) Subscribe(ctx context.Context) *Subscription[T] {
	sub := &Subscription[T]{
		items:     make(chan T, s.buffer),
		cancelled: make(chan struct{}),
	}

	err := s.pool.Submit(ctx, func(ctx context.Context) {
		e := &emitter[T]{sub: sub}

		defer func() {
			if r := recover(); r != nil {
				e.terminate(&asyncdb.PanicError{Value: r})
				return
			}
			// producer returned without a terminal signal
			e.terminate(nil)
		}()

		select {
		case <-sub.cancelled:
			e.terminate(asyncdb.ErrCancelled)
			return
		default:
		}

		s.produce(ctx, e)
	})
	if err != nil {
		(&emitter[T]{sub: sub}).terminate(err)
	}

	return sub
}

// All subscribes and yields items in producer order.
// A terminal error is yielded last with a zero item. Breaking the loop cancels the subscription.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		sub := s.Subscribe(ctx)
		defer sub.Cancel()

		for {
			item, ok := sub.Next(ctx)
			if !ok {
				break
			}
			if !yield(item, nil) {
				return
			}
		}

		if err := sub.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect subscribes and gathers all items.
// On error the items received before it are returned together with the error.
func (s *Sequence[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for item, err := range s.All(ctx) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Subscription consumer side of one sequence execution.
type Subscription[T any] struct {
	items      chan T
	cancelled  chan struct{}
	cancelOnce sync.Once

	mu     sync.Mutex
	err    error
	ctxErr error
}

// Next returns the next item. Returns false when the sequence is finished, failed or ctx is done;
// Err reports the reason. ctx cancellation cancels the subscription.
func (s *Subscription[T]) Next(ctx context.Context) (T, bool) {
	select {
	case item, ok := <-s.items:
		return item, ok
	case <-ctx.Done():
		s.mu.Lock()
		s.ctxErr = ctx.Err()
		s.mu.Unlock()
		s.Cancel()

		var zero T
		return zero, false
	}
}

// Err returns the terminal error after Next returned false. Nil means the sequence completed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctxErr != nil {
		return s.ctxErr
	}
	return s.err
}

// Cancel tells the producer to stop. Items already buffered are dropped by the consumer.
func (s *Subscription[T]) Cancel() {
	s.cancelOnce.Do(func() {
		close(s.cancelled)
	})
}

// emitter producer side of a subscription. Implements asyncdb.ISink.
type emitter[T any] struct {
	sub  *Subscription[T]
	once sync.Once
}

var _ asyncdb.ISink[int] = (*emitter[int])(nil)

func (e *emitter[T]) Next(ctx context.Context, item T) error {
	select {
	case <-e.sub.cancelled:
		return asyncdb.ErrCancelled
	default:
	}

	select {
	case e.sub.items <- item:
		return nil
	case <-e.sub.cancelled:
		return asyncdb.ErrCancelled
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *emitter[T]) Complete() {
	e.terminate(nil)
}

func (e *emitter[T]) Error(err error) {
	e.terminate(err)
}

func (e *emitter[T]) terminate(err error) {
	e.once.Do(func() {
		e.sub.mu.Lock()
		e.sub.err = err
		e.sub.mu.Unlock()
		close(e.sub.items)
	})
}

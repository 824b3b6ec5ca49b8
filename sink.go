package asyncdb

import "context"

// UnitOfWork is a function executed against a session, usually inside a transaction.
type UnitOfWork[T any] func(ctx context.Context, s ISession) (T, error)

// ISink receives stream rows. Exactly one of Complete or Error is called, once, after the last Next.
type ISink[T any] interface {
	// Next delivers a row. A non-nil error means the consumer is gone and the stream must stop.
	Next(ctx context.Context, item T) error
	Complete()
	Error(err error)
}

// SinkFuncs adapts plain functions to ISink. Nil functions are ignored.
type SinkFuncs[T any] struct {
	OnNext     func(ctx context.Context, item T) error
	OnComplete func()
	OnError    func(err error)
}

var _ ISink[int] = SinkFuncs[int]{}

func (s SinkFuncs[T]) Next(ctx context.Context, item T) error {
	if s.OnNext == nil {
		return nil
	}
	return s.OnNext(ctx, item)
}

func (s SinkFuncs[T]) Complete() {
	if s.OnComplete != nil {
		s.OnComplete()
	}
}

func (s SinkFuncs[T]) Error(err error) {
	if s.OnError != nil {
		s.OnError(err)
	}
}

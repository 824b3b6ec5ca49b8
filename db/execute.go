package db

import (
	"context"
	"errors"
	"slices"

	"github.com/cenkalti/backoff/v5"
	"github.com/n-r-w/asyncdb"
	"github.com/n-r-w/asyncdb/bridge"
	"github.com/n-r-w/asyncdb/engine"
)

// ExecutionBuilder configures a unit-of-work execution. Methods return modified copies.
type ExecutionBuilder[T any] struct {
	db         *Database
	fn         asyncdb.UnitOfWork[T]
	definition *asyncdb.TransactionDefinition
	retryable  func(error) bool
	retryOpts  []backoff.RetryOption
	buffer     int
}

// Execute returns a builder for fn. Without Transaction, fn runs without an explicit transaction.
func Execute[T any](d *Database, fn asyncdb.UnitOfWork[T]) ExecutionBuilder[T] {
	return ExecutionBuilder[T]{
		db: d,
		fn: fn,
	}
}

// Transaction runs the unit of work inside a transaction described by def.
func (b ExecutionBuilder[T]) Transaction(def asyncdb.TransactionDefinition) ExecutionBuilder[T] {
	b.definition = &def
	return b
}

// WithoutTransaction runs the unit of work without an explicit transaction.
func (b ExecutionBuilder[T]) WithoutTransaction() ExecutionBuilder[T] {
	b.definition = nil
	return b
}

// Retry re-runs the whole unit of work in a fresh transaction while retryable reports true for its error.
// opts configure github.com/cenkalti/backoff/v5; by default the attempts are limited to three.
func (b ExecutionBuilder[T]) Retry(retryable func(error) bool, opts ...backoff.RetryOption) ExecutionBuilder[T] {
	const defaultMaxTries = 3

	b.retryable = retryable
	b.retryOpts = append([]backoff.RetryOption{backoff.WithMaxTries(defaultMaxTries)}, opts...)
	return b
}

// Buffer sets the number of items buffered by Sequence.
func (b ExecutionBuilder[T]) Buffer(n int) ExecutionBuilder[T] {
	b.buffer = n
	return b
}

// Definition returns the transaction definition, nil if the execution is not transactional.
func (b ExecutionBuilder[T]) Definition() *asyncdb.TransactionDefinition {
	if b.definition == nil {
		return nil
	}
	def := *b.definition
	return &def
}

// Future returns a lazy future; the unit of work is submitted on the first Await or Start.
func (b ExecutionBuilder[T]) Future() *bridge.Future[T] {
	return bridge.NewFuture(b.db.pool, b.call)
}

// Run submits the unit of work and waits for its result.
func (b ExecutionBuilder[T]) Run(ctx context.Context) (T, error) {
	return b.Future().Await(ctx)
}

// Sequence returns a sequence of the unit of work result: slices and arrays emit their elements,
// nil emits nothing, any other value emits itself. Every subscription runs the unit of work again.
func (b ExecutionBuilder[T]) Sequence() *bridge.Sequence[any] {
	return bridge.FlattenAny(b.db.pool, b.buffer, b.call)
}

func (b ExecutionBuilder[T]) execution() engine.Execution {
	return engine.Execution{
		Definition: b.Definition(),
		Factory:    b.db.factory,
		Logger:     b.db.logger,
	}
}

func (b ExecutionBuilder[T]) call(ctx context.Context) (T, error) {
	e := b.execution()

	if b.retryable == nil {
		return engine.Execute(ctx, e, b.fn)
	}

	attempt := 0
	value, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		if attempt > 1 {
			b.db.logger.Debugf(ctx, "database %s: retrying unit of work, attempt %d", b.db.name, attempt)
		}

		v, err := engine.Execute(ctx, e, b.fn)
		if err != nil && !b.retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, slices.Clone(b.retryOpts)...)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}

	return value, err
}

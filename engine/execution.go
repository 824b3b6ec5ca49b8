// Package engine runs units of work and streaming queries against sessions,
// managing the transaction lifecycle and restoring pooled connection state.
// All functions block; asynchronous adaptation is done by the bridge package.
package engine

import (
	"context"

	"github.com/n-r-w/asyncdb"
)

// Execution parameters of a unit-of-work execution.
type Execution struct {
	// Definition nil means the work runs without an explicit transaction.
	Definition *asyncdb.TransactionDefinition
	Factory    asyncdb.ISessionFactory
	Logger     asyncdb.ILogger
}

// Execute opens a session, runs fn inside the transaction described by e.Definition and closes the session.
// The error returned by fn is returned as is. Begin and commit failures are returned as *asyncdb.TransactionError.
// On failure the transaction is rolled back and session state is restored before returning.
// A panic in fn is re-raised after the same cleanup.
func Execute[T any](ctx context.Context, e Execution, fn asyncdb.UnitOfWork[T]) (T, error) {
	var zero T

	if e.Factory == nil {
		return zero, asyncdb.ErrNoFactory
	}
	logger := asyncdb.LoggerOrNop(e.Logger)

	session, err := e.Factory.OpenSession(ctx)
	if err != nil {
		return zero, &asyncdb.TransactionError{Op: "open session", Err: err}
	}

	var (
		tc       *txContext
		finished bool
	)

	// If panic occurs, rollback the transaction.
	defer func() {
		if finished {
			return
		}
		if p := recover(); p != nil {
			abort(ctx, session, tc, logger)
			panic(p) // Re-throw panic after rollback.
		}
	}()

	if e.Definition != nil {
		tc, err = beginTransaction(ctx, session, *e.Definition, logger)
		if err != nil {
			finished = true
			abort(ctx, session, tc, logger)
			return zero, err
		}
	}

	result, err := fn(ctx, session)
	if err != nil {
		finished = true
		abort(ctx, session, tc, logger)
		return zero, err
	}

	if tc != nil {
		if err = session.Commit(ctx); err != nil {
			finished = true
			abort(ctx, session, tc, logger)
			return zero, &asyncdb.TransactionError{Op: "commit", Err: err}
		}
		tc.restore(ctx, session, logger)
	}

	finished = true
	closeSession(ctx, session, logger)

	return result, nil
}

// beginTransaction applies the definition to the session and begins the transaction.
// The returned context is non-nil even on error, so that partially applied state can be restored.
func beginTransaction(ctx context.Context,
	session asyncdb.ISession,
	def asyncdb.TransactionDefinition,
	logger asyncdb.ILogger,
) (*txContext, error) {
	tc := &txContext{resetReadOnly: true}

	if def.HasTimeout() {
		session.SetTimeout(def.Timeout)
	}

	if def.ReadOnly {
		if err := session.SetReadOnly(ctx, true); err != nil {
			logger.Warningf(ctx, "failed to set read-only mode: %v", err)
		}
	}

	if err := tc.applyIsolation(ctx, session, def.Isolation); err != nil {
		return tc, err
	}

	if err := session.Begin(ctx); err != nil {
		return tc, &asyncdb.TransactionError{Op: "begin", Err: err}
	}

	tc.applyFlushMode(session, def.ReadOnly)

	return tc, nil
}

// abort rolls back, restores session state and closes the session. Errors are logged.
func abort(ctx context.Context, session asyncdb.ISession, tc *txContext, logger asyncdb.ILogger) {
	rollback(ctx, session, logger)
	tc.restore(ctx, session, logger)
	closeSession(ctx, session, logger)
}

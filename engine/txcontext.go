package engine

import (
	"context"

	"github.com/n-r-w/asyncdb"
)

// txContext remembers the session state changed when a transaction was opened.
// It is created at begin and consumed once when the transaction ends.
type txContext struct {
	previousFlushMode asyncdb.FlushMode
	flushModeChanged  bool

	previousIsolation asyncdb.IsolationLevel
	isolationChanged  bool

	// resetReadOnly restore read-write mode if the connection reports read-only at the end.
	resetReadOnly bool
	consumed      bool
}

// applyIsolation switches the session to level if it differs from the current one.
func (c *txContext) applyIsolation(ctx context.Context, session asyncdb.ISession, level asyncdb.IsolationLevel) error {
	if level.IsDefault() {
		return nil
	}

	current, err := session.Isolation(ctx)
	if err != nil {
		return &asyncdb.TransactionError{Op: "get isolation", Err: err}
	}

	if current == level {
		return nil
	}

	if err := session.SetIsolation(ctx, level); err != nil {
		return &asyncdb.TransactionError{Op: "set isolation", Err: err}
	}

	c.previousIsolation = current
	c.isolationChanged = true

	return nil
}

// applyFlushMode sets FlushManual for read-only transactions unless already manual,
// and FlushAuto for read-write transactions whose mode is below FlushCommit.
func (c *txContext) applyFlushMode(session asyncdb.ISession, readOnly bool) {
	current := session.FlushMode()

	var target asyncdb.FlushMode
	switch {
	case readOnly && current != asyncdb.FlushManual:
		target = asyncdb.FlushManual
	case !readOnly && current < asyncdb.FlushCommit:
		target = asyncdb.FlushAuto
	default:
		return
	}

	session.SetFlushMode(target)
	c.previousFlushMode = current
	c.flushModeChanged = true
}

// restore puts isolation, read-only mode and flush mode back.
// Failures are logged and never returned. Repeated calls do nothing.
func (c *txContext) restore(ctx context.Context, session asyncdb.ISession, logger asyncdb.ILogger) {
	if c == nil || c.consumed {
		return
	}
	c.consumed = true
	ctx = context.WithoutCancel(ctx)

	if session.IsConnected() {
		if c.isolationChanged {
			if err := session.SetIsolation(ctx, c.previousIsolation); err != nil {
				logCleanup(ctx, logger, "restore isolation", err)
			}
		}

		if c.resetReadOnly {
			readOnly, err := session.IsReadOnly(ctx)
			switch {
			case err != nil:
				logCleanup(ctx, logger, "check read-only", err)
			case readOnly:
				if err := session.SetReadOnly(ctx, false); err != nil {
					logCleanup(ctx, logger, "reset read-only", err)
				}
			}
		}
	}

	if c.flushModeChanged {
		session.SetFlushMode(c.previousFlushMode)
	}
}

func logCleanup(ctx context.Context, logger asyncdb.ILogger, op string, err error) {
	logger.Warningf(ctx, "%v", &asyncdb.ResourceCleanupError{Op: op, Err: err})
}

// rollback rolls back the active transaction, if any.
func rollback(ctx context.Context, session asyncdb.ISession, logger asyncdb.ILogger) {
	if !session.InTransaction() {
		return
	}
	if err := session.Rollback(context.WithoutCancel(ctx)); err != nil {
		logCleanup(ctx, logger, "rollback", err)
	}
}

func closeSession(ctx context.Context, session asyncdb.ISession, logger asyncdb.ILogger) {
	if session == nil {
		return
	}
	if err := session.Close(context.WithoutCancel(ctx)); err != nil {
		logCleanup(ctx, logger, "close session", err)
	}
}

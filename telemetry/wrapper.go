package telemetry

import (
	"context"

	"github.com/n-r-w/asyncdb"
)

type telemetryHelperFunc func(ctx context.Context, command, details string, arguments []any,
	f func(ctx context.Context) error) error

// SessionWrapper wrapper over asyncdb.ISession with added telemetry.
// State accessors are passed through without spans.
type SessionWrapper struct {
	asyncdb.ISession
	tFunc telemetryHelperFunc
}

var _ asyncdb.ISession = (*SessionWrapper)(nil)

func newWrapper(session asyncdb.ISession, tFunc telemetryHelperFunc) *SessionWrapper {
	return &SessionWrapper{
		ISession: session,
		tFunc:    tFunc,
	}
}

// Begin starts a transaction.
func (p *SessionWrapper) Begin(ctx context.Context) error {
	return p.tFunc(ctx, "begin", "", nil, p.ISession.Begin)
}

// Commit commits the transaction.
func (p *SessionWrapper) Commit(ctx context.Context) error {
	return p.tFunc(ctx, "commit", "", nil, p.ISession.Commit)
}

// Rollback rolls back the transaction.
func (p *SessionWrapper) Rollback(ctx context.Context) error {
	return p.tFunc(ctx, "rollback", "", nil, p.ISession.Rollback)
}

// Exec executes a statement.
func (p *SessionWrapper) Exec(ctx context.Context, sql string, args ...any) (n int64, err error) {
	err = p.tFunc(ctx, "exec", sql, args, func(ctx context.Context) error {
		n, err = p.ISession.Exec(ctx, sql, args...)
		return err
	})

	return n, err
}

// Queue queues a statement.
func (p *SessionWrapper) Queue(ctx context.Context, sql string, args ...any) error {
	return p.tFunc(ctx, "queue", sql, args, func(ctx context.Context) error {
		return p.ISession.Queue(ctx, sql, args...)
	})
}

// Flush sends queued statements.
func (p *SessionWrapper) Flush(ctx context.Context) error {
	return p.tFunc(ctx, "flush", "", nil, p.ISession.Flush)
}

// Get scans a single row into dst.
func (p *SessionWrapper) Get(ctx context.Context, dst any, sql string, args ...any) error {
	return p.tFunc(ctx, "get", sql, args, func(ctx context.Context) error {
		return p.ISession.Get(ctx, dst, sql, args...)
	})
}

// Select scans all rows into dst.
func (p *SessionWrapper) Select(ctx context.Context, dst any, sql string, args ...any) error {
	return p.tFunc(ctx, "select", sql, args, func(ctx context.Context) error {
		return p.ISession.Select(ctx, dst, sql, args...)
	})
}

// ExecuteQuery opens a cursor. Only opening the cursor is measured.
func (p *SessionWrapper) ExecuteQuery(ctx context.Context, q asyncdb.Query) (cursor asyncdb.ICursor, err error) {
	args := q.Positional
	if !q.HasPositional() && len(q.Named) > 0 {
		args = []any{q.Named}
	}

	err = p.tFunc(ctx, "execute query", q.SQL, args, func(ctx context.Context) error {
		cursor, err = p.ISession.ExecuteQuery(ctx, q)
		return err
	})

	return cursor, err
}

// Close closes the session.
func (p *SessionWrapper) Close(ctx context.Context) error {
	return p.tFunc(ctx, "close", "", nil, p.ISession.Close)
}

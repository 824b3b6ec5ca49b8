package asyncdb

//go:generate mockgen -source interface.go -destination interface_mock.go -package asyncdb

import (
	"context"
	"time"
)

// ISessionFactory opens sessions. Safe for concurrent use.
type ISessionFactory interface {
	// OpenSession opens a transactional session.
	OpenSession(ctx context.Context) (ISession, error)
	// OpenReadSession opens a session optimized for reading.
	OpenReadSession(ctx context.Context) (ISession, error)
}

// ISession a single database session bound to one pooled connection.
// Not safe for concurrent use.
type ISession interface {
	// Begin starts a transaction.
	Begin(ctx context.Context) error
	// Commit flushes queued statements (unless the flush mode is FlushManual) and commits.
	Commit(ctx context.Context) error
	// Rollback discards queued statements and rolls back.
	Rollback(ctx context.Context) error
	// InTransaction returns true if a transaction is active.
	InTransaction() bool
	// SetTimeout sets the timeout of the next transaction. TimeoutDefault clears it.
	SetTimeout(timeout time.Duration)

	// Isolation returns the connection's current isolation level.
	Isolation(ctx context.Context) (IsolationLevel, error)
	// SetIsolation changes the connection's isolation level.
	SetIsolation(ctx context.Context, level IsolationLevel) error
	// SetReadOnly switches the connection's read-only mode.
	SetReadOnly(ctx context.Context, readOnly bool) error
	// IsReadOnly returns the connection's read-only mode.
	IsReadOnly(ctx context.Context) (bool, error)
	// IsConnected returns false once the underlying connection is lost.
	IsConnected() bool

	FlushMode() FlushMode
	SetFlushMode(mode FlushMode)

	// Exec executes a statement immediately.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	// Queue defers a statement until the session is flushed.
	Queue(ctx context.Context, sql string, args ...any) error
	// Flush sends queued statements.
	Flush(ctx context.Context) error
	// Get scans a single row into dst.
	Get(ctx context.Context, dst any, sql string, args ...any) error
	// Select scans all rows into dst, which must be a pointer to a slice.
	Select(ctx context.Context, dst any, sql string, args ...any) error
	// ExecuteQuery opens a forward-only cursor.
	ExecuteQuery(ctx context.Context, q Query) (ICursor, error)

	// Close releases the connection. Queued statements are discarded.
	Close(ctx context.Context) error
}

// ICursor forward-only cursor over query results.
type ICursor interface {
	// Next advances to the next row. Returns false on exhaustion or error.
	Next(ctx context.Context) bool
	// Scan copies the current row into dst.
	Scan(dst any) error
	// Err returns the iteration error, if any.
	Err() error
	Close(ctx context.Context) error
}

package pq

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/n-r-w/asyncdb"
)

type statement struct {
	sql  string
	args asyncdb.Args
}

// Session asyncdb.ISession over one *sql.Conn.
// Isolation level and read-only mode are kept in the session and applied to every transaction it begins.
type Session struct {
	conn *sql.Conn
	tx   *sql.Tx
	// txCancel releases the transaction context, including its timeout.
	txCancel context.CancelFunc

	isolation asyncdb.IsolationLevel
	readOnly  bool
	timeout   time.Duration
	flushMode asyncdb.FlushMode
	pending   []statement
	broken    bool

	log asyncdb.QueryLogger
}

var _ asyncdb.ISession = (*Session)(nil)

func newSession(f *SessionFactory, conn *sql.Conn, readOnly bool) *Session {
	s := &Session{
		conn:      conn,
		isolation: f.defaultIsolation,
		readOnly:  readOnly,
		flushMode: asyncdb.FlushAuto,
		log:       asyncdb.NewQueryLogger(f.name, f.logger, f.logQueries),
	}
	if readOnly {
		s.flushMode = asyncdb.FlushManual
	}
	return s
}

// Begin starts a transaction with the session's isolation level, read-only mode and timeout.
func (s *Session) Begin(ctx context.Context) error {
	if s.conn == nil {
		return asyncdb.ErrSessionClosed
	}
	if s.tx != nil {
		return asyncdb.ErrTransactionActive
	}

	txCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if s.timeout > asyncdb.TimeoutDefault {
		cancel()
		txCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	}

	tx, err := s.conn.BeginTx(txCtx, &sql.TxOptions{
		Isolation: s.isolation.TxOptionsLevel(),
		ReadOnly:  s.readOnly,
	})
	if err != nil {
		cancel()
		s.checkBroken(err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	s.tx = tx
	s.txCancel = cancel

	return nil
}

// Commit flushes queued statements unless the flush mode is FlushManual, and commits.
// If flushing fails the transaction stays active.
func (s *Session) Commit(ctx context.Context) error {
	if s.tx == nil {
		return asyncdb.ErrNoTransaction
	}

	if s.flushMode == asyncdb.FlushManual {
		s.pending = nil
	} else if err := s.Flush(ctx); err != nil {
		return err
	}

	err := s.tx.Commit()
	s.endTx()
	if err != nil {
		s.checkBroken(err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback discards queued statements and rolls back.
func (s *Session) Rollback(_ context.Context) error {
	s.pending = nil

	if s.tx == nil {
		return asyncdb.ErrNoTransaction
	}

	err := s.tx.Rollback()
	s.endTx()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.checkBroken(err)
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

func (s *Session) endTx() {
	s.tx = nil
	if s.txCancel != nil {
		s.txCancel()
		s.txCancel = nil
	}
}

// InTransaction returns true if a transaction is active.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// SetTimeout sets the timeout of the next transaction.
func (s *Session) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Isolation returns the isolation level applied to the next transaction.
func (s *Session) Isolation(_ context.Context) (asyncdb.IsolationLevel, error) {
	return s.isolation, nil
}

// SetIsolation sets the isolation level of the next transaction.
func (s *Session) SetIsolation(_ context.Context, level asyncdb.IsolationLevel) error {
	if s.tx != nil {
		return fmt.Errorf("change isolation: %w", asyncdb.ErrTransactionActive)
	}
	s.isolation = level
	return nil
}

// SetReadOnly sets the read-only mode of the next transaction.
func (s *Session) SetReadOnly(_ context.Context, readOnly bool) error {
	s.readOnly = readOnly
	return nil
}

// IsReadOnly returns the read-only mode.
func (s *Session) IsReadOnly(_ context.Context) (bool, error) {
	return s.readOnly, nil
}

// IsConnected returns false after Close or once the driver reported a bad connection.
func (s *Session) IsConnected() bool {
	return s.conn != nil && !s.broken
}

func (s *Session) FlushMode() asyncdb.FlushMode {
	return s.flushMode
}

func (s *Session) SetFlushMode(mode asyncdb.FlushMode) {
	s.flushMode = mode
}

// Exec executes a statement immediately.
func (s *Session) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if err := s.autoFlush(ctx); err != nil {
		return 0, err
	}
	return s.exec(ctx, query, args)
}

// Queue defers the statement until the session is flushed.
// Outside a transaction and with FlushAlways the statement is executed immediately.
func (s *Session) Queue(ctx context.Context, query string, args ...any) error {
	if s.tx == nil || s.flushMode == asyncdb.FlushAlways {
		_, err := s.Exec(ctx, query, args...)
		return err
	}

	s.pending = append(s.pending, statement{sql: query, args: args})
	return nil
}

// Flush executes queued statements in order.
func (s *Session) Flush(ctx context.Context) error {
	for len(s.pending) > 0 {
		st := s.pending[0]
		s.pending = s.pending[1:]

		if _, err := s.exec(ctx, st.sql, st.args); err != nil {
			s.pending = nil
			return fmt.Errorf("flush: %w", err)
		}
	}
	s.pending = nil

	return nil
}

// Get scans a single row into dst.
func (s *Session) Get(ctx context.Context, dst any, query string, args ...any) error {
	q, err := s.querier()
	if err != nil {
		return err
	}
	if err := s.autoFlush(ctx); err != nil {
		return err
	}

	return s.log.Run(ctx, "Get", query, args, func() error {
		return getPlain(ctx, q, dst, query, args)
	})
}

// Select scans all rows into dst.
func (s *Session) Select(ctx context.Context, dst any, query string, args ...any) error {
	q, err := s.querier()
	if err != nil {
		return err
	}
	if err := s.autoFlush(ctx); err != nil {
		return err
	}

	return s.log.Run(ctx, "Select", query, args, func() error {
		return selectPlain(ctx, q, dst, query, args)
	})
}

// ExecuteQuery opens a cursor over q. database/sql drivers read rows incrementally,
// so the fetch size is not applied.
func (s *Session) ExecuteQuery(ctx context.Context, q asyncdb.Query) (asyncdb.ICursor, error) {
	querier, err := s.querier()
	if err != nil {
		return nil, err
	}
	if err := s.autoFlush(ctx); err != nil {
		return nil, err
	}

	query, err := asyncdb.PagedSQL(q.SQL, q)
	if err != nil {
		return nil, err
	}
	args := queryArgs(q)

	var rows *sql.Rows
	err = s.log.Run(ctx, "Query", query, args, func() error {
		rows, err = querier.QueryContext(ctx, query, args...) //nolint:sqlclosecheck // will be closed by cursor
		return err
	})
	if err != nil {
		s.checkBroken(err)
		return nil, fmt.Errorf("sql select: %w [%s]", err, asyncdb.TruncSQL(query))
	}

	return &cursor{
		rows:    rows,
		scanner: sqlscan.NewRowScanner(rows),
	}, nil
}

// Close rolls back an active transaction and returns the connection to the pool.
func (s *Session) Close(_ context.Context) error {
	if s.conn == nil {
		return nil
	}

	s.pending = nil

	var err error
	if s.tx != nil {
		if rbErr := s.tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		s.endTx()
	}

	err = errors.Join(err, s.conn.Close())
	s.conn = nil

	return err
}

func (s *Session) querier() (IQuerier, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	if s.conn == nil {
		return nil, asyncdb.ErrSessionClosed
	}
	return s.conn, nil
}

func (s *Session) exec(ctx context.Context, query string, args asyncdb.Args) (n int64, err error) {
	q, err := s.querier()
	if err != nil {
		return 0, err
	}

	err = s.log.Run(ctx, "Exec", query, args, func() error {
		n, err = execPlain(ctx, q, query, args)
		return err
	})
	s.checkBroken(err)

	return n, err
}

func (s *Session) autoFlush(ctx context.Context) error {
	if s.flushMode >= asyncdb.FlushAuto && len(s.pending) > 0 {
		return s.Flush(ctx)
	}
	return nil
}

func (s *Session) checkBroken(err error) {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		s.broken = true
	}
}

// cursor asyncdb.ICursor over *sql.Rows.
type cursor struct {
	rows    *sql.Rows
	scanner *sqlscan.RowScanner
}

func (c *cursor) Next(_ context.Context) bool {
	return c.rows.Next()
}

func (c *cursor) Scan(dst any) error {
	return c.scanner.Scan(dst)
}

func (c *cursor) Err() error {
	return c.rows.Err()
}

func (c *cursor) Close(_ context.Context) error {
	return c.rows.Close()
}

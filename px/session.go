package px

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/n-r-w/asyncdb"
)

const batchSizeLogLimit = 10

// Session asyncdb.ISession over one pooled connection.
// Isolation level and read-only mode are session characteristics of the connection itself,
// so they survive the session and must be restored before the connection goes back to the pool.
type Session struct {
	conn *pgxpool.Conn
	tx   pgx.Tx

	// readOnly makes transactions started by the session read-only without touching connection state.
	readOnly  bool
	timeout   time.Duration
	flushMode asyncdb.FlushMode
	batch     *pgx.Batch

	log asyncdb.QueryLogger
}

var _ asyncdb.ISession = (*Session)(nil)

func newSession(f *SessionFactory, conn *pgxpool.Conn, readOnly bool) *Session {
	s := &Session{
		conn:      conn,
		readOnly:  readOnly,
		flushMode: asyncdb.FlushAuto,
		log:       asyncdb.NewQueryLogger(f.name, f.logger, f.logQueries),
	}
	if readOnly {
		s.flushMode = asyncdb.FlushManual
	}
	return s
}

// Begin starts a transaction. The statement timeout applies to this transaction only.
func (s *Session) Begin(ctx context.Context) error {
	if s.conn == nil {
		return asyncdb.ErrSessionClosed
	}
	if s.tx != nil {
		return asyncdb.ErrTransactionActive
	}

	//nolint:exhaustruct // external type, only set necessary fields
	opts := pgx.TxOptions{}
	if s.readOnly {
		opts.AccessMode = pgx.ReadOnly
	}

	tx, err := s.conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if s.timeout > asyncdb.TimeoutDefault {
		timeout := fmt.Sprintf("%dms", s.timeout.Milliseconds())
		if _, err = tx.Exec(ctx, "SELECT set_config('statement_timeout', $1, true)", timeout); err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			return fmt.Errorf("failed to set transaction timeout: %w", err)
		}
	}

	s.tx = tx

	return nil
}

// Commit sends queued statements unless the flush mode is FlushManual, and commits.
// If sending fails the transaction stays active.
func (s *Session) Commit(ctx context.Context) error {
	if s.tx == nil {
		return asyncdb.ErrNoTransaction
	}

	if s.flushMode == asyncdb.FlushManual {
		s.batch = nil
	} else if err := s.Flush(ctx); err != nil {
		return err
	}

	err := s.tx.Commit(ctx)
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback discards queued statements and rolls back.
func (s *Session) Rollback(ctx context.Context) error {
	s.batch = nil

	if s.tx == nil {
		return asyncdb.ErrNoTransaction
	}

	err := s.tx.Rollback(ctx)
	s.tx = nil
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// InTransaction returns true if a transaction is active.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// SetTimeout sets the statement timeout of the next transaction.
func (s *Session) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Isolation returns the default isolation level of the connection.
func (s *Session) Isolation(ctx context.Context) (asyncdb.IsolationLevel, error) {
	var level string
	if err := s.show(ctx, "default_transaction_isolation", &level); err != nil {
		return asyncdb.IsolationDefault, err
	}

	return asyncdb.ParseIsolation(level)
}

// SetIsolation sets the default isolation level of the connection. IsolationDefault resets it to the server default.
func (s *Session) SetIsolation(ctx context.Context, level asyncdb.IsolationLevel) error {
	sql := "RESET default_transaction_isolation"
	if !level.IsDefault() {
		sql = "SET SESSION CHARACTERISTICS AS TRANSACTION ISOLATION LEVEL " + level.SQL()
	}

	_, err := s.exec(ctx, sql, nil)
	return err
}

// SetReadOnly sets the default access mode of the connection.
func (s *Session) SetReadOnly(ctx context.Context, readOnly bool) error {
	sql := "SET SESSION CHARACTERISTICS AS TRANSACTION READ WRITE"
	if readOnly {
		sql = "SET SESSION CHARACTERISTICS AS TRANSACTION READ ONLY"
	}

	_, err := s.exec(ctx, sql, nil)
	return err
}

// IsReadOnly returns the default access mode of the connection.
func (s *Session) IsReadOnly(ctx context.Context) (bool, error) {
	var value string
	if err := s.show(ctx, "default_transaction_read_only", &value); err != nil {
		return false, err
	}

	return value == "on", nil
}

// IsConnected returns false after Close or once the connection is lost.
func (s *Session) IsConnected() bool {
	return s.conn != nil && !s.conn.Conn().IsClosed()
}

func (s *Session) FlushMode() asyncdb.FlushMode {
	return s.flushMode
}

func (s *Session) SetFlushMode(mode asyncdb.FlushMode) {
	s.flushMode = mode
}

// Exec executes a statement immediately.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if err := s.autoFlush(ctx); err != nil {
		return 0, err
	}
	return s.exec(ctx, sql, args)
}

// Queue adds the statement to the batch sent on flush.
// Outside a transaction and with FlushAlways the statement is executed immediately.
func (s *Session) Queue(ctx context.Context, sql string, args ...any) error {
	if s.tx == nil || s.flushMode == asyncdb.FlushAlways {
		_, err := s.Exec(ctx, sql, args...)
		return err
	}

	if s.batch == nil {
		//nolint:exhaustruct // external type, QueuedQueries is managed by Queue method
		s.batch = &pgx.Batch{}
	}
	s.batch.Queue(sql, args...)

	return nil
}

// Flush sends queued statements as one batch.
func (s *Session) Flush(ctx context.Context) error {
	if s.batch == nil || s.batch.Len() == 0 {
		return nil
	}

	batch := s.batch
	s.batch = nil

	q, err := s.querier()
	if err != nil {
		return err
	}

	var description string
	if s.log.Enabled() {
		description = batchDescription(batch, batchSizeLogLimit)
	}

	return s.log.Run(ctx, "SendBatch", description, nil, func() error {
		_, err := sendBatch(ctx, q.(IBatcher), batch)
		return err
	})
}

// Get scans a single row into dst.
func (s *Session) Get(ctx context.Context, dst any, sql string, args ...any) error {
	q, err := s.querier()
	if err != nil {
		return err
	}
	if err := s.autoFlush(ctx); err != nil {
		return err
	}

	return s.log.Run(ctx, "Get", sql, args, func() error {
		return getPlain(ctx, q, dst, sql, args)
	})
}

// Select scans all rows into dst.
func (s *Session) Select(ctx context.Context, dst any, sql string, args ...any) error {
	q, err := s.querier()
	if err != nil {
		return err
	}
	if err := s.autoFlush(ctx); err != nil {
		return err
	}

	return s.log.Run(ctx, "Select", sql, args, func() error {
		return selectPlain(ctx, q, dst, sql, args)
	})
}

// ExecuteQuery declares a NO SCROLL server-side cursor over q and fetches q.FetchSize rows per round trip.
// Outside a transaction the cursor runs in its own transaction, finished when the cursor is closed.
func (s *Session) ExecuteQuery(ctx context.Context, q asyncdb.Query) (asyncdb.ICursor, error) {
	if s.conn == nil {
		return nil, asyncdb.ErrSessionClosed
	}
	if err := s.autoFlush(ctx); err != nil {
		return nil, err
	}

	query, err := asyncdb.PagedSQL(q.SQL, q)
	if err != nil {
		return nil, err
	}
	args := queryArgs(q)

	tx, own := s.tx, false
	if tx == nil {
		//nolint:exhaustruct // external type, only set necessary fields
		opts := pgx.TxOptions{}
		if q.ReadOnly || s.readOnly {
			opts.AccessMode = pgx.ReadOnly
		}
		if tx, err = s.conn.BeginTx(ctx, opts); err != nil {
			return nil, fmt.Errorf("failed to begin cursor transaction: %w", err)
		}
		own = true
	}

	name := cursorName()
	declare := fmt.Sprintf("DECLARE %s NO SCROLL CURSOR FOR %s", name, query)
	// cursor names are unique, the statement must not be cached
	declareArgs := append(asyncdb.Args{pgx.QueryExecModeDescribeExec}, args...)

	err = s.log.Run(ctx, "Declare", declare, args, func() error {
		_, err := tx.Exec(ctx, declare, declareArgs...)
		return err
	})
	if err != nil {
		if own {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
		return nil, fmt.Errorf("sql select: %w [%s]", err, asyncdb.TruncSQL(query))
	}

	return &cursor{
		tx:        tx,
		ownTx:     own,
		name:      name,
		fetchSize: max(q.FetchSize, 1),
		log:       s.log,
	}, nil
}

// Close rolls back an active transaction and releases the connection.
func (s *Session) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}

	s.batch = nil

	var err error
	if s.tx != nil {
		if rbErr := s.tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = fmt.Errorf("failed to rollback transaction: %w", rbErr)
		}
		s.tx = nil
	}

	s.conn.Release()
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

func (s *Session) exec(ctx context.Context, sql string, args asyncdb.Args) (n int64, err error) {
	q, err := s.querier()
	if err != nil {
		return 0, err
	}

	err = s.log.Run(ctx, "Exec", sql, args, func() error {
		n, err = execPlain(ctx, q, sql, args)
		return err
	})

	return n, err
}

func (s *Session) show(ctx context.Context, parameter string, dst *string) error {
	q, err := s.querier()
	if err != nil {
		return err
	}

	sql := "SHOW " + parameter
	return s.log.Run(ctx, "Show", sql, nil, func() error {
		return getPlain(ctx, q, dst, sql, nil)
	})
}

func (s *Session) autoFlush(ctx context.Context) error {
	if s.flushMode >= asyncdb.FlushAuto {
		return s.Flush(ctx)
	}
	return nil
}

// cursorName returns a unique cursor identifier.
func cursorName() string {
	return "asyncdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

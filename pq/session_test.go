package pq

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/n-r-w/asyncdb"
	"github.com/stretchr/testify/require"
)

const insertSQL = "INSERT INTO users (name) VALUES ($1)"

type user struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

func newMockSession(t *testing.T, read bool) (*Session, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	f := New(WithDB(db), WithName("test"), WithLogQueries())
	require.NoError(t, f.Start(ctx))

	var s asyncdb.ISession
	if read {
		s, err = f.OpenReadSession(ctx)
	} else {
		s, err = f.OpenSession(ctx)
	}
	require.NoError(t, err)

	return s.(*Session), mock
}

func TestSession_QueueFlushedOnCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).WithArgs("a").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).WithArgs("b").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Begin(ctx))
	require.True(t, s.InTransaction())
	require.NoError(t, s.Queue(ctx, insertSQL, "a"))
	require.NoError(t, s.Queue(ctx, insertSQL, "b"))
	require.Len(t, s.pending, 2)

	require.NoError(t, s.Commit(ctx))
	require.False(t, s.InTransaction())
	require.Empty(t, s.pending)
	require.NoError(t, s.Close(ctx))
	require.False(t, s.IsConnected())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_ManualFlushDiscardsOnCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, s.Begin(ctx))
	s.SetFlushMode(asyncdb.FlushManual)
	require.NoError(t, s.Queue(ctx, insertSQL, "a"))
	require.NoError(t, s.Commit(ctx))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_AutoFlushBeforeQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).WithArgs("a").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a"))
	mock.ExpectCommit()

	require.NoError(t, s.Begin(ctx))
	require.NoError(t, s.Queue(ctx, insertSQL, "a"))

	var users []user
	require.NoError(t, s.Select(ctx, &users, "SELECT id, name FROM users"))
	require.Equal(t, []user{{ID: 1, Name: "a"}}, users)

	require.NoError(t, s.Commit(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_FlushAlwaysExecutesImmediately(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).WithArgs("a").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	require.NoError(t, s.Begin(ctx))
	s.SetFlushMode(asyncdb.FlushAlways)
	require.NoError(t, s.Queue(ctx, insertSQL, "a"))
	require.Empty(t, s.pending)
	require.NoError(t, s.Rollback(ctx))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RollbackDiscardsQueue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectBegin()
	mock.ExpectRollback()

	require.NoError(t, s.Begin(ctx))
	require.NoError(t, s.Queue(ctx, insertSQL, "a"))
	require.NoError(t, s.Rollback(ctx))
	require.Empty(t, s.pending)
	require.ErrorIs(t, s.Rollback(ctx), asyncdb.ErrNoTransaction)
	require.ErrorIs(t, s.Commit(ctx), asyncdb.ErrNoTransaction)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_QueueWithoutTransaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).WithArgs("a").WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Queue(ctx, insertSQL, "a"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_FlushError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)
	execErr := errors.New("constraint")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSQL)).WithArgs("a").WillReturnError(execErr)
	mock.ExpectRollback()

	require.NoError(t, s.Begin(ctx))
	require.NoError(t, s.Queue(ctx, insertSQL, "a"))
	require.NoError(t, s.Queue(ctx, insertSQL, "b"))

	err := s.Commit(ctx)
	require.ErrorIs(t, err, execErr)
	require.True(t, s.InTransaction(), "transaction stays active after a failed flush")
	require.Empty(t, s.pending)

	require.NoError(t, s.Rollback(ctx))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_State(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	level, err := s.Isolation(ctx)
	require.NoError(t, err)
	require.Equal(t, asyncdb.IsolationReadCommitted, level)
	require.NoError(t, s.SetIsolation(ctx, asyncdb.IsolationSerializable))

	ro, err := s.IsReadOnly(ctx)
	require.NoError(t, err)
	require.False(t, ro)
	require.NoError(t, s.SetReadOnly(ctx, true))
	s.SetTimeout(time.Second)
	require.Equal(t, asyncdb.FlushAuto, s.FlushMode())

	mock.ExpectBegin()
	mock.ExpectRollback()

	require.NoError(t, s.Begin(ctx))
	require.NotNil(t, s.txCancel)
	require.ErrorIs(t, s.Begin(ctx), asyncdb.ErrTransactionActive)
	require.ErrorIs(t, s.SetIsolation(ctx, asyncdb.IsolationReadCommitted), asyncdb.ErrTransactionActive)

	// Close rolls back the active transaction
	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))
	require.ErrorIs(t, s.Begin(ctx), asyncdb.ErrSessionClosed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_ReadSession(t *testing.T) {
	t.Parallel()

	s, _ := newMockSession(t, true)

	ro, err := s.IsReadOnly(context.Background())
	require.NoError(t, err)
	require.True(t, ro)
	require.Equal(t, asyncdb.FlushManual, s.FlushMode())
}

func TestSession_ExecuteQuery(t *testing.T) {
	t.Parallel()

	t.Run("named parameters and paging", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, mock := newMockSession(t, true)

		mock.ExpectQuery(`SELECT \* FROM \(SELECT id, name FROM users WHERE name = :name AND id > :id\) AS paged LIMIT 2 OFFSET 1`).
			WithArgs(sql.Named("id", 0), sql.Named("name", "a")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "a").AddRow(3, "a"))

		c, err := s.ExecuteQuery(ctx, asyncdb.Query{
			SQL:         "SELECT id, name FROM users WHERE name = :name AND id > :id",
			Named:       map[string]any{"name": "a", "id": 0},
			FetchSize:   1,
			MaxResults:  2,
			FirstResult: 1,
		})
		require.NoError(t, err)

		var got []user
		for c.Next(ctx) {
			var u user
			require.NoError(t, c.Scan(&u))
			got = append(got, u)
		}
		require.NoError(t, c.Err())
		require.NoError(t, c.Close(ctx))

		require.Equal(t, []user{{ID: 2, Name: "a"}, {ID: 3, Name: "a"}}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("positional parameters win", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, mock := newMockSession(t, true)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = $1")).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		c, err := s.ExecuteQuery(ctx, asyncdb.Query{
			SQL:         "SELECT id FROM users WHERE id = $1",
			Named:       map[string]any{"ignored": 1},
			Positional:  []any{5},
			MaxResults:  -1,
			FirstResult: -1,
		})
		require.NoError(t, err)

		require.True(t, c.Next(ctx))
		var id int
		require.NoError(t, c.Scan(&id))
		require.Equal(t, 5, id)
		require.False(t, c.Next(ctx))
		require.NoError(t, c.Close(ctx))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row error", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, mock := newMockSession(t, true)
		rowErr := errors.New("network")

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).RowError(1, rowErr))

		c, err := s.ExecuteQuery(ctx, asyncdb.Query{SQL: "SELECT id FROM users", MaxResults: -1, FirstResult: -1})
		require.NoError(t, err)

		count := 0
		for c.Next(ctx) {
			count++
		}
		require.Equal(t, 1, count)
		require.ErrorIs(t, c.Err(), rowErr)
		require.NoError(t, c.Close(ctx))
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s, mock := newMockSession(t, true)
		queryErr := errors.New("syntax")

		mock.ExpectQuery(regexp.QuoteMeta("SELECT broken")).WillReturnError(queryErr)

		_, err := s.ExecuteQuery(ctx, asyncdb.Query{SQL: "SELECT broken", MaxResults: -1, FirstResult: -1})
		require.ErrorIs(t, err, queryErr)
		require.True(t, s.IsConnected())
	})
}

func TestSession_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mock := newMockSession(t, false)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	var u user
	require.NoError(t, s.Get(ctx, &u, "SELECT id, name FROM users WHERE id = $1", 1))
	require.Equal(t, user{ID: 1, Name: "a"}, u)

	require.ErrorIs(t, s.Get(ctx, &u, "SELECT id, name FROM users WHERE id = $1", 2), sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionFactory_Start(t *testing.T) {
	t.Parallel()

	f := New()
	require.ErrorIs(t, f.Start(context.Background()), asyncdb.ErrInvalidConfiguration)

	_, err := f.OpenSession(context.Background())
	require.ErrorIs(t, err, asyncdb.ErrNotStarted)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := asyncdb.DefaultPoolConfiguration()
	cfg.MaxPoolSize = 7
	f = New(WithDB(db), WithPoolConfiguration(cfg))
	require.NoError(t, f.Start(context.Background()))
	require.Equal(t, 7, f.DB().Stats().MaxOpenConnections)
	require.NoError(t, f.Stop(context.Background()))
}

func TestSessionFactory_ApplyPoolConfiguration(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := New(WithDB(db))
	require.Equal(t, asyncdb.DefaultPoolConfiguration(), f.PoolConfiguration())

	cfg := asyncdb.DefaultPoolConfiguration()
	cfg.MaxPoolSize = 3
	cfg.MinPoolSize = 1

	// a started factory resizes the *sql.DB at once
	require.NoError(t, f.Start(context.Background()))
	f.ApplyPoolConfiguration(cfg)
	require.Equal(t, cfg, f.PoolConfiguration())
	require.Equal(t, 3, db.Stats().MaxOpenConnections)
}

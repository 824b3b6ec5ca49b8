//go:build integration

package px

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/n-r-w/asyncdb"
	"github.com/n-r-w/asyncdb/db"
	"github.com/n-r-w/testdock/v2"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// newTestDatabase starts a database with a single connection, so that every session reuses it.
func newTestDatabase(t *testing.T) (*db.Database, *SessionFactory) {
	t.Helper()

	ctx := context.Background()
	_, informer := testdock.GetPgxPool(t, testdock.DefaultPostgresDSN)

	cfg := asyncdb.DefaultPoolConfiguration()
	cfg.MaxPoolSize = 1
	cfg.MinPoolSize = 1

	factory := New(
		WithName("test"),
		WithDSN(informer.DSN()),
		WithPoolConfiguration(cfg),
		WithLogQueries(),
	)

	ctxStart, cancelStart := context.WithTimeout(ctx, 5*time.Second)
	t.Cleanup(cancelStart)

	d, err := db.New(ctxStart, factory, db.WithName("test"), db.WithPoolConfiguration(cfg))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctxStop, cancelStop := context.WithTimeout(ctx, 2*time.Second)
		defer cancelStop()
		require.NoError(t, d.Close(ctxStop))
	})

	_, err = db.Execute(d, func(ctx context.Context, s asyncdb.ISession) (int64, error) {
		return s.Exec(ctx, "CREATE TABLE IF NOT EXISTS items (id serial PRIMARY KEY, name text NOT NULL)")
	}).Run(ctx)
	require.NoError(t, err)

	return d, factory
}

func connectionState(t *testing.T, factory *SessionFactory) (asyncdb.IsolationLevel, bool) {
	t.Helper()

	ctx := context.Background()
	s, err := factory.OpenSession(ctx)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close(ctx)) }()

	level, err := s.Isolation(ctx)
	require.NoError(t, err)
	readOnly, err := s.IsReadOnly(ctx)
	require.NoError(t, err)

	return level, readOnly
}

func TestSession_IsolationRestored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, factory := newTestDatabase(t)

	level, err := db.Execute(d, func(ctx context.Context, s asyncdb.ISession) (string, error) {
		var level string
		err := s.Get(ctx, &level, "SHOW transaction_isolation")
		return level, err
	}).Transaction(asyncdb.NewTransactionDefinition(asyncdb.WithIsolation(asyncdb.IsolationSerializable))).Run(ctx)
	require.NoError(t, err)
	require.Equal(t, "serializable", level)

	// the pool has one connection, the same one is checked
	current, readOnly := connectionState(t, factory)
	require.Equal(t, asyncdb.IsolationReadCommitted, current)
	require.False(t, readOnly)
}

func TestSession_ReadOnlyReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, factory := newTestDatabase(t)

	_, err := db.Execute(d, func(ctx context.Context, s asyncdb.ISession) (int64, error) {
		return s.Exec(ctx, "INSERT INTO items (name) VALUES ('forbidden')")
	}).Transaction(asyncdb.NewTransactionDefinition(asyncdb.WithReadOnly())).Run(ctx)
	require.Error(t, err)
	require.True(t, hasCode(err, pgerrcode.ReadOnlySQLTransaction))

	_, readOnly := connectionState(t, factory)
	require.False(t, readOnly)
}

func TestSession_QueueAndStream(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, _ := newTestDatabase(t)

	_, err := db.Execute(d, func(ctx context.Context, s asyncdb.ISession) (int, error) {
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			if err := s.Queue(ctx, "INSERT INTO items (name) VALUES ($1)", name); err != nil {
				return 0, err
			}
		}
		return 0, nil
	}).Transaction(asyncdb.NewTransactionDefinition(asyncdb.WithIsolation(asyncdb.IsolationReadCommitted))).Run(ctx)
	require.NoError(t, err)

	items, err := db.Stream[item](d, "SELECT id, name FROM items ORDER BY id").FetchSize(2).Collect(ctx)
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, "a", items[0].Name)
	require.Equal(t, "e", items[4].Name)

	one, err := db.Stream[item](d, "SELECT id, name FROM items WHERE id = @id").
		Parameter("id", items[2].ID).
		FetchSize(1).
		Collect(ctx)
	require.NoError(t, err)
	require.Equal(t, []item{items[2]}, one)

	names, err := db.Stream[string](d, "SELECT name FROM items ORDER BY id").
		Isolation(asyncdb.IsolationRepeatableRead).
		FirstResult(1).
		MaxResults(3).
		Collect(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c", "d"}, names)
}

func TestSession_Timeout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, _ := newTestDatabase(t)

	_, err := db.Execute(d, func(ctx context.Context, s asyncdb.ISession) (int64, error) {
		return s.Exec(ctx, "SELECT pg_sleep(2)")
	}).Transaction(asyncdb.NewTransactionDefinition(asyncdb.WithTimeout(100 * time.Millisecond))).Run(ctx)
	require.Error(t, err)
	require.True(t, hasCode(err, pgerrcode.QueryCanceled))

	// the timeout is transaction-local
	_, err = db.Execute(d, func(ctx context.Context, s asyncdb.ISession) (int64, error) {
		return s.Exec(ctx, "SELECT pg_sleep(0.2)")
	}).Run(ctx)
	require.NoError(t, err)
}

func TestSessionFactory_AcquireReleasedOnClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, factory := newTestDatabase(t)

	before := factory.Pool().Stat().AcquiredConns()

	s, err := factory.OpenSession(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Begin(ctx))
	require.Equal(t, before+1, factory.Pool().Stat().AcquiredConns())

	// Close rolls back and releases the connection
	require.NoError(t, s.Close(ctx))
	require.False(t, s.IsConnected())
	require.Equal(t, before, factory.Pool().Stat().AcquiredConns())
}

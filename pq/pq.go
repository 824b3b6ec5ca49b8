// Package pq implements asyncdb sessions on top of database/sql.
// Any database/sql driver can be used; isolation level and read-only mode are applied per transaction
// through sql.TxOptions.
package pq

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/n-r-w/asyncdb"
	"github.com/samber/lo"
)

// execPlain - executes a modification query. Querier can be either sql.Tx or sql.Conn.
func execPlain(ctx context.Context, db IQuerier, query string, args asyncdb.Args) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("sql exec: %w [%s]", err, asyncdb.TruncSQL(query))
	}

	n, err := result.RowsAffected()
	if err != nil {
		// some drivers do not report affected rows
		return 0, nil //nolint:nilerr // not an execution error
	}
	return n, nil
}

// selectPlain - executes a query and scans all rows into dst.
func selectPlain(ctx context.Context, db IQuerier, dst any, query string, args asyncdb.Args) error {
	if err := sqlscan.Select(ctx, db, dst, query, args...); err != nil {
		return fmt.Errorf("sql select: %w [%s]", err, asyncdb.TruncSQL(query))
	}
	return nil
}

// getPlain - executes a query and scans one row into dst.
// Returns sql.ErrNoRows unwrapped if there are no rows.
func getPlain(ctx context.Context, db IQuerier, dst any, query string, args asyncdb.Args) error {
	if err := sqlscan.Get(ctx, db, dst, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("sql select: %w [%s]", err, asyncdb.TruncSQL(query))
	}
	return nil
}

// queryArgs returns the arguments of q: positional values as is, named values as sql.NamedArg sorted by name.
func queryArgs(q asyncdb.Query) asyncdb.Args {
	if q.HasPositional() {
		return slices.Clone(q.Positional)
	}

	names := lo.Keys(q.Named)
	slices.Sort(names)

	return lo.Map(names, func(name string, _ int) any {
		return sql.Named(name, q.Named[name])
	})
}

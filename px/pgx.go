// Package px implements asyncdb sessions for PostgreSQL on top of pgxpool.
// Isolation level and read-only mode are connection state (SET SESSION CHARACTERISTICS),
// streaming queries use server-side cursors and queued statements are flushed as one pgx.Batch.
package px

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	pgx "github.com/jackc/pgx/v5"
	"github.com/n-r-w/asyncdb"
	"github.com/samber/lo"
)

// execPlain executes a modification query. Querier can be either pgx.Tx or *pgxpool.Conn.
func execPlain(ctx context.Context, querier IQuerier, sql string, args asyncdb.Args) (int64, error) {
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("sql exec: %w [%s]", err, asyncdb.TruncSQL(sql))
	}

	return tag.RowsAffected(), nil
}

// selectPlain executes a query and scans all rows into dst.
func selectPlain(ctx context.Context, querier IQuerier, dst any, sql string, args asyncdb.Args) error {
	if err := pgxscan.Select(ctx, querier, dst, sql, args...); err != nil {
		return fmt.Errorf("sql select: %w [%s]", err, asyncdb.TruncSQL(sql))
	}

	return nil
}

// getPlain executes a query and scans one row into dst.
func getPlain(ctx context.Context, querier IQuerier, dst any, sql string, args asyncdb.Args) error {
	if err := pgxscan.Get(ctx, querier, dst, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// we don't need the original error, it contains extra service information that will come in the response
			return pgx.ErrNoRows
		}

		return fmt.Errorf("sql select: %w [%s]", err, asyncdb.TruncSQL(sql))
	}

	return nil
}

// sendBatch executes a batch of queries with error checking. tx can be either pgx.Tx or *pgxpool.Conn.
func sendBatch(ctx context.Context, tx IBatcher, batch *pgx.Batch) (rowsAffected int64, err error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	br := tx.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()
	for i := range batch.Len() {
		tag, err := br.Exec()
		if err != nil {
			return 0, fmt.Errorf("pgx.SendBatch exec at index %d: %w", i, err)
		}
		rowsAffected += tag.RowsAffected()
	}
	return rowsAffected, nil
}

// batchDescription formats queued queries for the query log, at most limit of them.
func batchDescription(b *pgx.Batch, limit int) string {
	var queries strings.Builder

	for i, q := range b.QueuedQueries {
		if i >= limit {
			_, _ = queries.WriteString("...")
			break
		}
		// [SELECT * FROM users WHERE id IN ($1,$2); ARGS: 2,3]
		_, _ = queries.WriteString("[")
		_, _ = queries.WriteString(q.SQL)
		_, _ = queries.WriteString("; ARGS: ")
		for j, arg := range q.Arguments {
			if j > 0 {
				_, _ = queries.WriteString(",")
			}
			_, _ = queries.WriteString(fmt.Sprintf("%v", arg))
		}
		_, _ = queries.WriteString("]")
	}

	return queries.String()
}

// queryArgs returns the arguments of q: positional values as is, named values as pgx.NamedArgs.
// Named parameters are referenced in SQL as @name.
func queryArgs(q asyncdb.Query) asyncdb.Args {
	if q.HasPositional() {
		return slices.Clone(q.Positional)
	}
	if len(q.Named) == 0 {
		return nil
	}

	return asyncdb.Args{pgx.NamedArgs(lo.Assign(q.Named))}
}

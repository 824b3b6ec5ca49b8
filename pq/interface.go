package pq

import (
	"context"
	"database/sql"
)

// IQuerier - a subset of sql.DB, sql.Conn and sql.Tx for queries.
type IQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var (
	_ IQuerier = (*sql.Conn)(nil)
	_ IQuerier = (*sql.Tx)(nil)
)

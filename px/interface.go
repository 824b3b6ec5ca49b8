package px

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source interface.go -destination interface_mock.go -package px

// IQuerier interface for executing queries. Implemented by pgx.Tx and *pgxpool.Conn.
type IQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// IBatcher interface for sending batches. Implemented by pgx.Tx and *pgxpool.Conn.
type IBatcher interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ IQuerier = (pgx.Tx)(nil)
	_ IQuerier = (*pgxpool.Conn)(nil)
	_ IBatcher = (pgx.Tx)(nil)
	_ IBatcher = (*pgxpool.Conn)(nil)
)

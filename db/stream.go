package db

import (
	"context"
	"slices"

	"github.com/n-r-w/asyncdb"
	"github.com/n-r-w/asyncdb/bridge"
	"github.com/n-r-w/asyncdb/engine"
	"github.com/samber/lo"
)

// StreamBuilder configures a streaming query. Methods return modified copies.
type StreamBuilder[T any] struct {
	db  *Database
	req engine.StreamRequest
}

// Stream returns a builder for query. Rows are scanned into T.
func Stream[T any](d *Database, query string) StreamBuilder[T] {
	return StreamBuilder[T]{
		db:  d,
		req: engine.NewStreamRequest(query),
	}
}

// Parameter binds a named parameter.
func (b StreamBuilder[T]) Parameter(name string, value any) StreamBuilder[T] {
	b.req.Parameters = lo.Assign(b.req.Parameters, map[string]any{name: value})
	return b
}

// Parameters binds named parameters, replacing those with the same names.
func (b StreamBuilder[T]) Parameters(params map[string]any) StreamBuilder[T] {
	b.req.Parameters = lo.Assign(b.req.Parameters, params)
	return b
}

// PositionalParameters binds values to ordinals 1..n. Named parameters are ignored when set.
func (b StreamBuilder[T]) PositionalParameters(values ...any) StreamBuilder[T] {
	b.req.PositionalParameters = slices.Clone(values)
	return b
}

// MaxResults limits the number of rows. Non-positive values mean unbounded.
func (b StreamBuilder[T]) MaxResults(n int) StreamBuilder[T] {
	b.req.MaxResults = n
	return b
}

// FirstResult skips the first n rows.
func (b StreamBuilder[T]) FirstResult(n int) StreamBuilder[T] {
	b.req.FirstResult = n
	return b
}

// FetchSize sets the number of rows fetched per round trip. It also bounds the sequence buffer.
func (b StreamBuilder[T]) FetchSize(n int) StreamBuilder[T] {
	if n <= 0 {
		n = engine.DefaultFetchSize
	}
	b.req.FetchSize = n
	return b
}

// Isolation runs the query in its own transaction with the given isolation level.
func (b StreamBuilder[T]) Isolation(level asyncdb.IsolationLevel) StreamBuilder[T] {
	b.req.Isolation = &level
	return b
}

// Request returns a copy of the stream request.
func (b StreamBuilder[T]) Request() engine.StreamRequest {
	req := b.req
	req.Parameters = lo.Assign(b.req.Parameters)
	req.PositionalParameters = slices.Clone(b.req.PositionalParameters)
	if b.req.Isolation != nil {
		level := *b.req.Isolation
		req.Isolation = &level
	}
	return req
}

// Sequence returns a lazy sequence of rows. Every subscription runs the query again.
func (b StreamBuilder[T]) Sequence() *bridge.Sequence[T] {
	req := b.Request()
	streamer := engine.Streamer{
		Factory: b.db.factory,
		Logger:  b.db.logger,
	}

	return bridge.NewSequence(b.db.pool, req.FetchSize, func(ctx context.Context, sink asyncdb.ISink[T]) {
		engine.Stream(ctx, streamer, req, sink)
	})
}

// Collect runs the query and gathers all rows.
func (b StreamBuilder[T]) Collect(ctx context.Context) ([]T, error) {
	return b.Sequence().Collect(ctx)
}

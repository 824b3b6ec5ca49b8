package engine

import (
	"context"

	"github.com/n-r-w/asyncdb"
)

// DefaultFetchSize number of rows fetched per round trip when not set.
const DefaultFetchSize = 5

// StreamRequest describes a streaming query.
type StreamRequest struct {
	Query string
	// Parameters named parameters. Ignored when PositionalParameters is not empty.
	Parameters map[string]any
	// PositionalParameters bound to ordinals 1..n.
	PositionalParameters []any
	FetchSize            int
	// MaxResults -1 means unbounded.
	MaxResults int
	// FirstResult -1 means unset.
	FirstResult int
	// Isolation if set, the stream runs in its own transaction with this isolation level.
	Isolation *asyncdb.IsolationLevel
}

// NewStreamRequest returns a request with default fetch size and no paging.
func NewStreamRequest(query string) StreamRequest {
	return StreamRequest{
		Query:       query,
		FetchSize:   DefaultFetchSize,
		MaxResults:  -1,
		FirstResult: -1,
	}
}

// toQuery builds the query passed to the session.
func (r StreamRequest) toQuery() asyncdb.Query {
	q := asyncdb.Query{
		SQL:         r.Query,
		FetchSize:   r.FetchSize,
		MaxResults:  -1,
		FirstResult: -1,
		ReadOnly:    true,
	}

	if q.FetchSize <= 0 {
		q.FetchSize = DefaultFetchSize
	}
	if r.MaxResults > 0 {
		q.MaxResults = r.MaxResults
	}
	if r.FirstResult >= 0 {
		q.FirstResult = r.FirstResult
	}

	if len(r.PositionalParameters) > 0 {
		q.Positional = r.PositionalParameters
	} else if len(r.Parameters) > 0 {
		q.Named = r.Parameters
	}

	return q
}

// Streamer parameters of a streaming execution.
type Streamer struct {
	Factory asyncdb.ISessionFactory
	Logger  asyncdb.ILogger
}

// Stream opens a read session, runs the request's query through a forward-only cursor and
// pushes every row to the sink in cursor order. Rows are never buffered beyond the fetch size.
// The cursor and the session are closed before the sink receives Complete or Error.
// A sink that refuses a row stops the stream and fails it with the sink's error.
func Stream[T any](ctx context.Context, s Streamer, req StreamRequest, sink asyncdb.ISink[T]) {
	if s.Factory == nil {
		sink.Error(asyncdb.ErrNoFactory)
		return
	}
	logger := asyncdb.LoggerOrNop(s.Logger)

	session, err := s.Factory.OpenReadSession(ctx)
	if err != nil {
		sink.Error(&asyncdb.StreamError{Op: "open session", Err: err})
		return
	}

	var (
		cursor   asyncdb.ICursor
		tc       *txContext
		finished bool
	)

	// If panic occurs, rollback the transaction.
	defer func() {
		if finished {
			return
		}
		if p := recover(); p != nil {
			closeCursor(ctx, cursor, logger)
			abort(ctx, session, tc, logger)
			panic(p) // Re-throw panic after rollback.
		}
	}()

	fail := func(err error) {
		finished = true
		closeCursor(ctx, cursor, logger)
		abort(ctx, session, tc, logger)
		sink.Error(err)
	}

	if req.Isolation != nil {
		tc = &txContext{}
		if err = tc.applyIsolation(ctx, session, *req.Isolation); err != nil {
			fail(err)
			return
		}
		if err = session.Begin(ctx); err != nil {
			fail(&asyncdb.TransactionError{Op: "begin", Err: err})
			return
		}
	}

	query := req.toQuery()

	cursor, err = session.ExecuteQuery(ctx, query)
	if err != nil {
		fail(&asyncdb.StreamError{Op: "execute query", Err: err})
		return
	}

	for cursor.Next(ctx) {
		var item T
		if err = cursor.Scan(&item); err != nil {
			fail(&asyncdb.StreamError{Op: "scan", Err: err})
			return
		}

		if err = sink.Next(ctx, item); err != nil {
			fail(err)
			return
		}
	}

	if err = cursor.Err(); err != nil {
		fail(&asyncdb.StreamError{Op: "fetch", Err: err})
		return
	}

	closeCursor(ctx, cursor, logger)
	cursor = nil

	if tc != nil {
		if err = session.Commit(ctx); err != nil {
			fail(&asyncdb.TransactionError{Op: "commit", Err: err})
			return
		}
		tc.restore(ctx, session, logger)
	}

	finished = true
	closeSession(ctx, session, logger)
	sink.Complete()
}

func closeCursor(ctx context.Context, cursor asyncdb.ICursor, logger asyncdb.ILogger) {
	if cursor == nil {
		return
	}
	if err := cursor.Close(context.WithoutCancel(ctx)); err != nil {
		logCleanup(ctx, logger, "close cursor", err)
	}
}

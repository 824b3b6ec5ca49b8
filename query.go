package asyncdb

// Query is a bound query handed to ISession.ExecuteQuery.
type Query struct {
	SQL string
	// Named parameters, referenced in SQL as @name (pgx) or :name (database/sql drivers).
	Named map[string]any
	// Positional parameters, bound to ordinals 1..n. Take precedence over Named.
	Positional []any
	// FetchSize is the number of rows read from the server per round trip.
	FetchSize int
	// MaxResults limits the number of rows when > 0.
	MaxResults int
	// FirstResult skips rows when >= 0.
	FirstResult int
	ReadOnly    bool
}

// HasPositional reports whether positional parameters are bound.
func (q Query) HasPositional() bool {
	return len(q.Positional) > 0
}

// Paged reports whether MaxResults or FirstResult restrict the result.
func (q Query) Paged() bool {
	return q.MaxResults > 0 || q.FirstResult > 0
}

// Package asyncdb runs blocking transactional database work on a bounded worker pool
// and hands the results back as futures and lazily produced row sequences.
//
// The root package holds the shared vocabulary: transaction definitions, isolation levels,
// flush modes, pool configuration, the session/cursor interfaces implemented by the
// driver adapters (px, pq) and the error taxonomy.
package asyncdb

// Args is a slice of values for binding.
// Used to explicitly separate query parameters from other arguments.
type Args []any

const sqlTruncLen = 100

// TruncSQL truncates sql to sqlTruncLen characters.
func TruncSQL(sql string) string {
	if len(sql) > sqlTruncLen {
		return sql[0:sqlTruncLen] + "..."
	}

	return sql
}

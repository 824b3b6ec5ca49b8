package asyncdb

import (
	"fmt"
	"math"
	"strings"

	sq "github.com/n-r-w/squirrel"
)

// Builder creates a new instance of squirrel.StatementBuilderType for building queries
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// PagedSQL wraps sql into a sub-select restricted by the query's MaxResults and FirstResult.
// Placeholders of the inner query are left untouched. Returns sql unchanged if no paging is requested.
func PagedSQL(sql string, q Query) (string, error) {
	if !q.Paged() {
		return sql, nil
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question).
		Select("*").
		From("(" + strings.TrimRight(strings.TrimSpace(sql), ";") + ") AS paged")

	switch {
	case q.MaxResults > 0:
		builder = builder.Limit(uint64(q.MaxResults))
	case q.FirstResult > 0:
		// some engines do not accept OFFSET without LIMIT
		builder = builder.Limit(math.MaxInt64)
	}

	if q.FirstResult > 0 {
		builder = builder.Offset(uint64(q.FirstResult))
	}

	paged, _, err := builder.ToSql()
	if err != nil {
		return "", fmt.Errorf("build paged query: %w [%s]", err, TruncSQL(sql))
	}

	return paged, nil
}

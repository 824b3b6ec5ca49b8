package px

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/n-r-w/asyncdb"
)

var errNoRow = errors.New("cursor is not positioned on a row")

// cursor asyncdb.ICursor over a server-side cursor. Rows are fetched in portions of fetchSize.
type cursor struct {
	tx        pgx.Tx
	ownTx     bool
	name      string
	fetchSize int
	log       asyncdb.QueryLogger

	rows    pgx.Rows
	scanner *pgxscan.RowScanner
	fetched int
	done    bool
	err     error
}

func (c *cursor) Next(ctx context.Context) bool {
	for !c.done && c.err == nil {
		if c.rows == nil {
			if err := c.fetch(ctx); err != nil {
				c.err = err
				return false
			}
		}

		if c.rows.Next() {
			c.fetched++
			return true
		}

		c.rows.Close()
		if err := c.rows.Err(); err != nil {
			c.err = fmt.Errorf("fetch from %s: %w", c.name, err)
		}
		// a short portion means the cursor is exhausted
		c.done = c.fetched < c.fetchSize
		c.rows = nil
		c.scanner = nil
	}

	return false
}

func (c *cursor) fetch(ctx context.Context) error {
	sql := fmt.Sprintf("FETCH FORWARD %d FROM %s", c.fetchSize, c.name)

	return c.log.Run(ctx, "Fetch", sql, nil, func() error {
		rows, err := c.tx.Query(ctx, sql, pgx.QueryExecModeSimpleProtocol) //nolint:sqlclosecheck // closed when the portion is consumed
		if err != nil {
			return fmt.Errorf("fetch from %s: %w", c.name, err)
		}

		c.rows = rows
		c.scanner = pgxscan.NewRowScanner(rows)
		c.fetched = 0
		return nil
	})
}

func (c *cursor) Scan(dst any) error {
	if c.scanner == nil {
		return errNoRow
	}
	return c.scanner.Scan(dst)
}

func (c *cursor) Err() error {
	return c.err
}

// Close closes the server-side cursor and finishes the cursor's own transaction.
func (c *cursor) Close(ctx context.Context) error {
	if c.tx == nil {
		return nil
	}

	if c.rows != nil {
		c.rows.Close()
		c.rows = nil
		c.scanner = nil
	}

	var err error
	switch {
	case c.ownTx && c.err != nil:
		err = c.tx.Rollback(ctx)
	case c.ownTx:
		err = c.tx.Commit(ctx)
	case c.err == nil:
		_, err = c.tx.Exec(ctx, "CLOSE "+c.name)
	}
	c.tx = nil

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("close cursor %s: %w", c.name, err)
	}

	return nil
}

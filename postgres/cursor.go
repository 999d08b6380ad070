package postgres

import (
	"github.com/fwojciec/lectio"
	"github.com/jmoiron/sqlx"
)

var _ lectio.Cursor[int] = (*rowsCursor[struct{}, int])(nil)

// rowsCursor struct-scans each row into R and converts it to T. The rows
// are released on Close, on exhaustion and on the first error.
type rowsCursor[R, T any] struct {
	rows    *sqlx.Rows
	convert func(*R) T
	value   T
	err     error
	closed  bool
}

func newRowsCursor[R, T any](rows *sqlx.Rows, convert func(*R) T) *rowsCursor[R, T] {
	return &rowsCursor[R, T]{rows: rows, convert: convert}
}

func (c *rowsCursor[R, T]) Next() bool {
	if c.closed {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		_ = c.Close()
		return false
	}
	var row R
	if err := c.rows.StructScan(&row); err != nil {
		c.err = err
		_ = c.Close()
		return false
	}
	c.value = c.convert(&row)
	return true
}

func (c *rowsCursor[R, T]) Value() T {
	return c.value
}

func (c *rowsCursor[R, T]) Err() error {
	return c.err
}

func (c *rowsCursor[R, T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}

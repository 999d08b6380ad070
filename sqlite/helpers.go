package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/lectio"
	"github.com/ncruces/go-sqlite3"
)

// translate maps constraint violations to application errors. what names
// the entity for the message.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sqlite3.CONSTRAINT_UNIQUE), errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY):
		return lectio.Errorf(lectio.ECONFLICT, "%s already exists", what)
	case errors.Is(err, sqlite3.CONSTRAINT_FOREIGNKEY):
		return lectio.Errorf(lectio.ENOTFOUND, "%s refers to a missing row", what)
	case errors.Is(err, sqlite3.CONSTRAINT_CHECK):
		return lectio.Errorf(lectio.EINVALID, "%s is invalid", what)
	}
	return err
}

// matchQuery builds an FTS5 query requiring every term. Terms are quoted
// so punctuation is never read as query syntax.
func matchQuery(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " AND ")
}

// Ensure rowsCursor implements lectio.Cursor at compile time.
var _ lectio.Cursor[int] = (*rowsCursor[int])(nil)

// rowsCursor streams scanned rows. The underlying rows, and the connection
// they hold, are released on Close, on exhaustion and on the first error.
type rowsCursor[T any] struct {
	rows   *sql.Rows
	scan   func(*sql.Rows) (T, error)
	value  T
	err    error
	closed bool
}

func newRowsCursor[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) *rowsCursor[T] {
	return &rowsCursor[T]{rows: rows, scan: scan}
}

func (c *rowsCursor[T]) Next() bool {
	if c.closed {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		_ = c.Close()
		return false
	}
	v, err := c.scan(c.rows)
	if err != nil {
		c.err = err
		_ = c.Close()
		return false
	}
	c.value = v
	return true
}

func (c *rowsCursor[T]) Value() T {
	return c.value
}

func (c *rowsCursor[T]) Err() error {
	return c.err
}

func (c *rowsCursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}

package lectio

import "iter"

// Cursor streams results one at a time. A cursor is single-pass and holds
// an open connection until Close is called or Next returns false.
type Cursor[T any] interface {
	// Next advances to the next result and reports whether one exists.
	Next() bool

	// Value returns the current result.
	Value() T

	// Err returns the error that stopped iteration, if any.
	Err() error

	// Close releases the cursor. It is safe to call more than once.
	Close() error
}

// All adapts a cursor to a range-over-func iterator and closes it when
// iteration ends. The final element carries any iteration error.
func All[T any](c Cursor[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer c.Close()
		for c.Next() {
			if !yield(c.Value(), nil) {
				return
			}
		}
		if err := c.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains a cursor into a slice, stopping after limit results when
// limit is positive, and closes it.
func Collect[T any](c Cursor[T], limit int) ([]T, error) {
	var out []T
	for v, err := range All(c) {
		if err != nil {
			return out, err
		}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// SliceCursor is a Cursor over an in-memory slice.
type SliceCursor[T any] struct {
	items []T
	pos   int
}

// NewSliceCursor returns a cursor over items.
func NewSliceCursor[T any](items []T) *SliceCursor[T] {
	return &SliceCursor[T]{items: items, pos: -1}
}

func (c *SliceCursor[T]) Next() bool {
	if c.pos+1 >= len(c.items) {
		c.pos = len(c.items)
		return false
	}
	c.pos++
	return true
}

func (c *SliceCursor[T]) Value() T {
	if c.pos < 0 || c.pos >= len(c.items) {
		var zero T
		return zero
	}
	return c.items[c.pos]
}

func (c *SliceCursor[T]) Err() error   { return nil }
func (c *SliceCursor[T]) Close() error { return nil }

// Package list implements the windowed, filterable list engine behind every
// list screen: a lazily materialized Source over a backing Collection, and a
// View that maintains a sliding visible window with a cursor, horizontal
// scrolling, and highlight search.
package list

import (
	"errors"
	"time"
)

// ErrNotFound is the "past the end" signal a Collection returns from Row.
var ErrNotFound = errors.New("list: row not found")

// ErrOutOfRange is returned by Source.Row for indices beyond the logical end
// of the (possibly filtered) sequence.
var ErrOutOfRange = errors.New("list: index out of range")

// Collection is the external backing store of rows. It is owned by the
// caller; a Source never mutates it.
type Collection interface {
	// Len reports the logical number of rows, which may exceed what has been
	// materialized so far.
	Len() int

	// Row returns the display text for row i. Past the end it returns an
	// error matching ErrNotFound.
	Row(i int) (string, error)
}

// FieldCollection is implemented by collections whose rows carry filterable
// message fields. Collections without it are filtered on row text only.
type FieldCollection interface {
	Collection

	Sender(i int) string
	Subject(i int) string
	Body(i int) string

	// Date returns the row's date, or ok=false when it has none.
	Date(i int) (time.Time, bool)
}

// Strings is a static Collection over a slice of rows.
type Strings []string

func (s Strings) Len() int { return len(s) }

func (s Strings) Row(i int) (string, error) {
	if i < 0 || i >= len(s) {
		return "", ErrNotFound
	}
	return s[i], nil
}

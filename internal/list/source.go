package list

import (
	"errors"
	"fmt"
)

// DefaultFetchBatch is how many rows a Source materializes per append-fetch.
const DefaultFetchBatch = 10

// Source lazily materializes rows from a Collection and supports a single
// optional filter pass. Row access beyond the materialized prefix triggers
// append-fetches in batches; filtering scans the whole collection once and
// snapshots the matching rows.
type Source struct {
	c     Collection
	batch int

	rows     []string // materialized prefix of the unfiltered sequence
	ended    bool     // collection reported its true end during a fetch
	filtered []string // snapshot of matching rows; nil when unfiltered
	indices  []int    // collection index of each filtered row
	gen      uint64   // bumped whenever the visible sequence changes shape
}

// NewSource wraps a collection with the default fetch batch size.
func NewSource(c Collection) *Source {
	return &Source{c: c, batch: DefaultFetchBatch}
}

// SetFetchBatch overrides the append-fetch batch size.
func (s *Source) SetFetchBatch(n int) {
	if n > 0 {
		s.batch = n
	}
}

// Len reports the logical length of the visible sequence: the filtered row
// count while a filter is active, the collection's logical length otherwise.
func (s *Source) Len() int {
	if s.filtered != nil {
		return len(s.filtered)
	}
	return s.c.Len()
}

// Filtered reports whether a filter pass is active.
func (s *Source) Filtered() bool {
	return s.filtered != nil
}

// Generation identifies the current shape of the visible sequence. Views use
// it to drop highlight state when a filter toggles underneath them.
func (s *Source) Generation() uint64 {
	return s.gen
}

// Index maps visible row i back to its collection index. The mapping is the
// identity while unfiltered; out-of-range rows map to -1.
func (s *Source) Index(i int) int {
	if s.filtered != nil {
		if i < 0 || i >= len(s.indices) {
			return -1
		}
		return s.indices[i]
	}
	if i < 0 || i >= s.c.Len() {
		return -1
	}
	return i
}

// Row returns visible row i, materializing more of the collection as needed.
// Indices past the logical end return ErrOutOfRange.
func (s *Source) Row(i int) (string, error) {
	if i < 0 {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	if s.filtered != nil {
		if i >= len(s.filtered) {
			return "", fmt.Errorf("%w: %d", ErrOutOfRange, i)
		}
		return s.filtered[i], nil
	}
	for i >= len(s.rows) && !s.ended {
		if err := s.fetch(); err != nil {
			return "", err
		}
	}
	if i >= len(s.rows) {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	return s.rows[i], nil
}

// fetch appends up to one batch of rows from the collection, marking the end
// when the collection runs out.
func (s *Source) fetch() error {
	for n := 0; n < s.batch; n++ {
		row, err := s.c.Row(len(s.rows))
		if errors.Is(err, ErrNotFound) {
			s.ended = true
			return nil
		}
		if err != nil {
			return err
		}
		s.rows = append(s.rows, row)
	}
	return nil
}

// Filter applies a filter query, snapshotting the matching rows. A second
// filter on an already filtered source is a no-op: the caller must Unfilter
// first. An empty query is also a no-op.
func (s *Source) Filter(query string) error {
	if s.filtered != nil {
		return nil
	}
	q := parseQuery(query)
	if q.empty() {
		return nil
	}

	matched, indices, err := s.scan(q)
	if err != nil {
		return err
	}
	s.filtered = matched
	s.indices = indices
	s.gen++
	return nil
}

// Unfilter restores the unfiltered sequence.
func (s *Source) Unfilter() {
	if s.filtered == nil {
		return
	}
	s.filtered = nil
	s.indices = nil
	s.gen++
}

// scan walks the full collection applying q, in order. The materialized
// prefix is left untouched; matches snapshot the collection's display rows.
func (s *Source) scan(q query) ([]string, []int, error) {
	fields, _ := s.c.(FieldCollection)
	matched := []string{}
	indices := []int{}
	for i := 0; i < s.c.Len(); i++ {
		match, stop, err := q.match(s.c, fields, i)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if stop {
			break
		}
		if !match {
			continue
		}
		row, err := s.c.Row(i)
		if errors.Is(err, ErrNotFound) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		matched = append(matched, row)
		indices = append(indices, i)
	}
	return matched, indices, nil
}

package list

import (
	"strings"
	"time"
)

// dateLayout is the dd/mm/yyyy form filter queries use.
const dateLayout = "02/01/2006"

type queryKind int

const (
	queryPlain queryKind = iota
	queryFrom
	querySubject
	queryDate
	queryNone // empty or unusable query
)

// query is a parsed filter expression. Patterns are lower-cased once at parse
// time; all text matching is case-insensitive.
type query struct {
	kind    queryKind
	pattern string
	lower   time.Time // inclusive day for date queries
	upper   time.Time // exclusive day after the range for date queries
}

func (q query) empty() bool { return q.kind == queryNone }

// parseQuery interprets a filter line. A leading "from"/"f" or "subject"/"s"
// selector (separated from the pattern by a colon or whitespace) restricts
// matching to that field; "date"/"d" takes one or two dd/mm/yyyy dates, the
// second defaulting to today. Anything else is a plain substring query.
func parseQuery(raw string) query {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return query{kind: queryNone}
	}

	head, rest := splitSelector(raw)

	switch head {
	case "from", "f":
		if rest == "" {
			return query{kind: queryNone}
		}
		return query{kind: queryFrom, pattern: strings.ToLower(rest)}
	case "subject", "s":
		if rest == "" {
			return query{kind: queryNone}
		}
		return query{kind: querySubject, pattern: strings.ToLower(rest)}
	case "date", "d":
		return parseDateQuery(strings.Fields(rest))
	}
	return query{kind: queryPlain, pattern: strings.ToLower(raw)}
}

// splitSelector separates an optional field selector from the pattern. Both
// "from: carol" and "f carol" forms are accepted.
func splitSelector(raw string) (head, rest string) {
	i := strings.IndexAny(raw, ": \t")
	if i <= 0 {
		return "", raw
	}
	return strings.ToLower(raw[:i]), strings.TrimSpace(raw[i+1:])
}

// parseDateQuery builds a day-granular range from one or two dates. With one
// date the range runs to today. Reversed bounds are swapped. Unparseable
// dates yield a query that matches nothing.
func parseDateQuery(args []string) query {
	if len(args) == 0 || len(args) > 2 {
		return query{kind: queryNone}
	}

	lower, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return query{kind: queryDate}
	}
	upper := time.Now().Truncate(24 * time.Hour)
	if len(args) == 2 {
		upper, err = time.Parse(dateLayout, args[1])
		if err != nil {
			return query{kind: queryDate}
		}
	}
	if upper.Before(lower) {
		lower, upper = upper, lower
	}
	return query{kind: queryDate, lower: lower, upper: upper.AddDate(0, 0, 1)}
}

// match decides whether row i matches. stop=true ends the scan early: date
// ranges assume mailbox order is descending by date, so the first row older
// than the range terminates the walk.
func (q query) match(c Collection, fields FieldCollection, i int) (match, stop bool, err error) {
	switch q.kind {
	case queryPlain:
		if fields != nil {
			hit := strings.Contains(strings.ToLower(fields.Sender(i)), q.pattern) ||
				strings.Contains(strings.ToLower(fields.Subject(i)), q.pattern) ||
				strings.Contains(strings.ToLower(fields.Body(i)), q.pattern)
			return hit, false, nil
		}
		row, err := c.Row(i)
		if err != nil {
			return false, false, err
		}
		return strings.Contains(strings.ToLower(row), q.pattern), false, nil

	case queryFrom, querySubject:
		if fields == nil {
			// No fields to restrict to; fall back to row text.
			row, err := c.Row(i)
			if err != nil {
				return false, false, err
			}
			return strings.Contains(strings.ToLower(row), q.pattern), false, nil
		}
		value := fields.Sender(i)
		if q.kind == querySubject {
			value = fields.Subject(i)
		}
		return strings.Contains(strings.ToLower(value), q.pattern), false, nil

	case queryDate:
		if fields == nil || q.lower.IsZero() {
			return false, false, nil
		}
		d, ok := fields.Date(i)
		if !ok {
			return false, false, nil
		}
		if d.Before(q.lower) {
			return false, true, nil
		}
		if !d.Before(q.upper) {
			return false, false, nil
		}
		return true, false, nil
	}
	return false, false, nil
}

package store

import (
	"strings"

	"github.com/erazemk/bso/internal/model"
)

// activeCondition restricts every normal read path to rows that have not
// been soft-deleted.
const activeCondition = "deleted_at IS NULL"

// Filter is a parameterized boolean condition added to the active-row
// condition of a read.
type Filter struct {
	Where string
	Args  []any
}

// NumberLike matches blanks whose series followed by number matches an SQL
// LIKE pattern, e.g. "AF1%".
func NumberLike(pattern string) Filter {
	return Filter{Where: "series || number LIKE ?", Args: []any{pattern}}
}

// DateEquals matches blanks activated on d.
func DateEquals(d model.Date) Filter {
	return Filter{Where: "date = ?", Args: []any{d.String()}}
}

// SeriesEquals matches blanks of one series.
func SeriesEquals(series string) Filter {
	return Filter{Where: "series = ?", Args: []any{series}}
}

// And combines filters with AND.
func And(filters ...Filter) Filter {
	var parts []string
	var args []any
	for _, f := range filters {
		if f.Where == "" {
			continue
		}
		parts = append(parts, "("+f.Where+")")
		args = append(args, f.Args...)
	}
	return Filter{Where: strings.Join(parts, " AND "), Args: args}
}

// where renders the full WHERE clause including the active-row condition.
func (f Filter) where() string {
	if f.Where == "" {
		return " WHERE " + activeCondition
	}
	return " WHERE " + activeCondition + " AND (" + f.Where + ")"
}

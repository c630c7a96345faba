package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/bso/internal/model"
)

// InsertBlank inserts a single blank and returns its ID.
func InsertBlank(ctx context.Context, q Querier, b model.Blank) (int64, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO blanks (`+insertColumns+`) VALUES (?, ?, ?, ?, ?)`,
		blankToArgs(b)...,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting blank: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting blank id: %w", err)
	}
	return id, nil
}

// InsertRange inserts one clean blank per number in [start, end]. Callers
// pass a transaction to make the batch atomic.
func InsertRange(ctx context.Context, q Querier, series string, start, end int) (int, error) {
	stmt, err := q.PrepareContext(ctx, `INSERT INTO blanks (series, number) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing range insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for n := start; n <= end; n++ {
		if _, err := stmt.ExecContext(ctx, series, n); err != nil {
			return count, fmt.Errorf("inserting blank %s %d: %w", series, n, err)
		}
		count++
	}

	slog.DebugContext(ctx, "inserted blank range", "series", series, "start", start, "end", end, "count", count)
	return count, nil
}

// GetBlank returns a live blank by ID, or nil if it does not exist or was
// deleted.
func GetBlank(ctx context.Context, q Querier, id int64) (*model.Blank, error) {
	b, err := scanBlank(q.QueryRowContext(ctx,
		`SELECT `+blankColumns+` FROM blanks WHERE `+activeCondition+` AND id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting blank: %w", err)
	}
	return &b, nil
}

// ListBlanks returns all live blanks ordered by ID.
func ListBlanks(ctx context.Context, q Querier) ([]model.Blank, error) {
	return ListBlanksWhere(ctx, q, Filter{})
}

// ListBlanksWhere returns live blanks matching f, ordered by ID.
func ListBlanksWhere(ctx context.Context, q Querier, f Filter) ([]model.Blank, error) {
	query := `SELECT ` + blankColumns + ` FROM blanks` + f.where() + ` ORDER BY id`
	slog.DebugContext(ctx, "listing blanks", "query", query, "args", f.Args)

	rows, err := q.QueryContext(ctx, query, f.Args...)
	if err != nil {
		return nil, fmt.Errorf("listing blanks: %w", err)
	}
	defer rows.Close()

	var blanks []model.Blank
	for rows.Next() {
		b, err := scanBlank(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blank: %w", err)
		}
		blanks = append(blanks, b)
	}
	return blanks, rows.Err()
}

// UpdateBlank applies the supplied fields of u to a live blank and stamps
// updated_at. It reports whether a row was matched.
func UpdateBlank(ctx context.Context, q Querier, id int64, u model.BlankUpdate) (bool, error) {
	var sets []string
	var args []any

	if u.Date.Set {
		sets = append(sets, "date = ?")
		if u.Date.Null {
			args = append(args, nil)
		} else {
			args = append(args, u.Date.Value.String())
		}
	}
	if u.Comment.Set {
		sets = append(sets, "comment = ?")
		args = append(args, u.Comment.Value)
	}
	if u.Status.Set {
		sets = append(sets, "status = ?")
		args = append(args, int(u.Status.Value))
	}
	sets = append(sets, "updated_at = datetime('now')")
	args = append(args, id)

	query := `UPDATE blanks SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND ` + activeCondition
	slog.DebugContext(ctx, "updating blank", "query", query, "id", id)

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("updating blank: %w", err)
	}
	return affected(result)
}

// DeleteBlank soft-deletes a live blank. It reports whether a row was
// matched; deleting an already deleted blank matches nothing.
func DeleteBlank(ctx context.Context, q Querier, id int64) (bool, error) {
	result, err := q.ExecContext(ctx,
		`UPDATE blanks SET deleted_at = datetime('now'), updated_at = datetime('now')
		 WHERE id = ? AND `+activeCondition,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting blank: %w", err)
	}
	return affected(result)
}

// ListNumbers returns (number, series) pairs of live blanks matching f,
// ordered by series then number.
func ListNumbers(ctx context.Context, q Querier, f Filter) ([]model.SeriesNumber, error) {
	query := `SELECT number, series FROM blanks` + f.where() + ` ORDER BY series, number`
	slog.DebugContext(ctx, "listing numbers", "query", query, "args", f.Args)

	rows, err := q.QueryContext(ctx, query, f.Args...)
	if err != nil {
		return nil, fmt.Errorf("listing numbers: %w", err)
	}
	defer rows.Close()

	var pairs []model.SeriesNumber
	for rows.Next() {
		var p model.SeriesNumber
		if err := rows.Scan(&p.Number, &p.Series); err != nil {
			return nil, fmt.Errorf("scanning number: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting affected rows: %w", err)
	}
	return n > 0, nil
}

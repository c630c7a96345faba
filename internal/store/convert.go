package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/bso/internal/model"
)

// blankColumns is the column list every blank query selects, in the order
// blankRow.scanTargets expects.
const blankColumns = `id, series, number, date, comment, status, created_at, updated_at, deleted_at`

// blankRow mirrors one row of the blanks table as stored.
type blankRow struct {
	ID        int64
	Series    string
	Number    int
	Date      sql.NullString
	Comment   string
	Status    int
	CreatedAt string
	UpdatedAt sql.NullString
	DeletedAt sql.NullString
}

func (r *blankRow) scanTargets() []any {
	return []any{&r.ID, &r.Series, &r.Number, &r.Date, &r.Comment, &r.Status, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlank(s scanner) (model.Blank, error) {
	var row blankRow
	if err := s.Scan(row.scanTargets()...); err != nil {
		return model.Blank{}, err
	}
	return rowToBlank(row)
}

// rowToBlank converts a stored row into a Blank.
func rowToBlank(r blankRow) (model.Blank, error) {
	b := model.Blank{
		ID:      r.ID,
		Series:  r.Series,
		Number:  r.Number,
		Comment: r.Comment,
		Status:  model.Status(r.Status),
	}

	if r.Date.Valid && r.Date.String != "" {
		d, err := model.ParseDate(r.Date.String)
		if err != nil {
			return model.Blank{}, fmt.Errorf("blank %d: %w", r.ID, err)
		}
		b.Date = &d
	}

	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return model.Blank{}, fmt.Errorf("blank %d created_at: %w", r.ID, err)
	}
	b.CreatedAt = created

	if b.UpdatedAt, err = parseNullTimestamp(r.UpdatedAt); err != nil {
		return model.Blank{}, fmt.Errorf("blank %d updated_at: %w", r.ID, err)
	}
	if b.DeletedAt, err = parseNullTimestamp(r.DeletedAt); err != nil {
		return model.Blank{}, fmt.Errorf("blank %d deleted_at: %w", r.ID, err)
	}

	return b, nil
}

// blankToArgs converts a Blank into the values of an insert, in the order
// of insertColumns.
func blankToArgs(b model.Blank) []any {
	var date any
	if b.Date != nil {
		date = b.Date.String()
	}
	return []any{b.Series, b.Number, date, b.Comment, int(b.Status)}
}

const insertColumns = `series, number, date, comment, status`

func parseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(model.TimestampLayout, s, time.UTC)
}

func parseNullTimestamp(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTimestamp(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

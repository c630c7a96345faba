package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/erazemk/bso/internal/model"
	"github.com/erazemk/bso/internal/store"
)

// Category names, in report order.
const (
	CategoryUse          = "use"
	CategoryNew          = "new"
	CategorySpoiled      = "spoiled"
	CategoryLost         = "lost"
	CategoryCleanAtBegin = "clean_at_begin"
	CategoryCleanAtEnd   = "clean_at_end"
)

// Categories lists every report category in report order.
var Categories = []string{
	CategoryUse,
	CategoryNew,
	CategorySpoiled,
	CategoryLost,
	CategoryCleanAtBegin,
	CategoryCleanAtEnd,
}

// Engine builds monthly blank reports. It only reads.
type Engine struct {
	db            *sql.DB
	afterCategory func(name string)
}

// Option configures an Engine.
type Option func(*Engine)

// NewEngine creates a report engine over db.
func NewEngine(db *sql.DB, opts ...Option) *Engine {
	e := &Engine{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type category struct {
	name   string
	filter store.Filter
	set    func(r *model.Report, ranges model.SeriesRanges)
}

func categories(start, next model.Date) []category {
	s, n := start.String(), next.String()

	byDateAndStatus := func(status model.Status) store.Filter {
		return store.Filter{
			Where: "date >= ? AND date < ? AND status = ?",
			Args:  []any{s, n, int(status)},
		}
	}
	// Created before the boundary and not yet activated at it.
	cleanAt := func(boundary string) store.Filter {
		return store.Filter{
			Where: "created_at < ? AND (date >= ? OR date IS NULL)",
			Args:  []any{boundary, boundary},
		}
	}

	return []category{
		{CategoryUse, byDateAndStatus(model.StatusUse),
			func(r *model.Report, v model.SeriesRanges) { r.Use = v }},
		{CategoryNew, store.Filter{Where: "created_at >= ? AND created_at < ?", Args: []any{s, n}},
			func(r *model.Report, v model.SeriesRanges) { r.New = v }},
		{CategorySpoiled, byDateAndStatus(model.StatusSpoiled),
			func(r *model.Report, v model.SeriesRanges) { r.Spoiled = v }},
		{CategoryLost, byDateAndStatus(model.StatusLost),
			func(r *model.Report, v model.SeriesRanges) { r.Lost = v }},
		{CategoryCleanAtBegin, cleanAt(s),
			func(r *model.Report, v model.SeriesRanges) { r.CleanAtBegin = v }},
		{CategoryCleanAtEnd, cleanAt(n),
			func(r *model.Report, v model.SeriesRanges) { r.CleanAtEnd = v }},
	}
}

// GetReport builds the report for (year, month). All six categories are
// read inside one transaction so they agree on a single snapshot.
func (e *Engine) GetReport(ctx context.Context, year, month int) (model.Report, error) {
	start, next, err := Period(year, month)
	if err != nil {
		return model.Report{}, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Report{}, fmt.Errorf("beginning report transaction: %w", err)
	}
	defer tx.Rollback()

	var report model.Report
	for _, c := range categories(start, next) {
		pairs, err := store.ListNumbers(ctx, tx, c.filter)
		if err != nil {
			return model.Report{}, fmt.Errorf("querying %s: %w", c.name, err)
		}
		c.set(&report, Compress(pairs))

		if e.afterCategory != nil {
			e.afterCategory(c.name)
		}
	}

	slog.DebugContext(ctx, "built report", "period_start", start.String(), "period_next_start", next.String())
	return report, nil
}

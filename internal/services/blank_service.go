package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/erazemk/bso/internal/amqp"
	"github.com/erazemk/bso/internal/model"
	"github.com/erazemk/bso/internal/store"
)

// EventPublisher receives an event after every committed mutation.
type EventPublisher interface {
	PublishBlankEvent(ctx context.Context, e *amqp.BlankEvent) error
}

// BlankService orchestrates validated, transactional blank operations and
// announces committed changes through an optional publisher.
type BlankService struct {
	db        *sql.DB
	publisher EventPublisher
}

// NewBlankService creates a service over db. publisher may be nil.
func NewBlankService(db *sql.DB, publisher EventPublisher) *BlankService {
	return &BlankService{db: db, publisher: publisher}
}

// ListQuery selects which blanks List returns. At most one selector is
// honoured, in the order ID, Number, Date.
type ListQuery struct {
	ID     *int64
	Number string
	Date   *model.Date
}

// Filtered reports whether any selector is set.
func (q ListQuery) Filtered() bool {
	return q.ID != nil || q.Number != "" || q.Date != nil
}

// CreateRange inserts one clean blank per number of r. Inverted bounds are
// swapped. Either every number is inserted or none is.
func (s *BlankService) CreateRange(ctx context.Context, r model.BlankRange) (int, error) {
	if err := model.ValidateRange(r); err != nil {
		return 0, err
	}
	r = r.Normalize()

	var count int
	err := store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		count, err = store.InsertRange(ctx, tx, r.Series, r.Start, r.End)
		return err
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			slog.ErrorContext(ctx, "blank range conflicts with existing numbers",
				"series", r.Series, "start", r.Start, "end", r.End)
			return 0, &model.ConflictError{Series: r.Series, Start: r.Start, End: r.End, Err: err}
		}
		return 0, fmt.Errorf("creating blank range: %w", err)
	}

	s.publish(ctx, amqp.NewRangeCreatedEvent(r.Series, r.Start, r.End))
	return count, nil
}

// Create inserts a single blank with all of its attributes.
func (s *BlankService) Create(ctx context.Context, b model.Blank) (int64, error) {
	if err := model.ValidateBlank(b); err != nil {
		return 0, err
	}

	var id int64
	err := store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		id, err = store.InsertBlank(ctx, tx, b)
		return err
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			slog.ErrorContext(ctx, "blank already exists", "series", b.Series, "number", b.Number)
			return 0, &model.ConflictError{Series: b.Series, Start: b.Number, End: b.Number, Err: err}
		}
		return 0, fmt.Errorf("creating blank: %w", err)
	}

	s.publish(ctx, amqp.NewBlankEvent(amqp.EventBlankCreated, id))
	return id, nil
}

// Get returns a live blank, or nil if there is none with that ID.
func (s *BlankService) Get(ctx context.Context, id int64) (*model.Blank, error) {
	return store.GetBlank(ctx, s.db, id)
}

// Read returns every live blank ordered by ID.
func (s *BlankService) Read(ctx context.Context) ([]model.Blank, error) {
	return store.ListBlanks(ctx, s.db)
}

// ReadWithFilter returns live blanks matching f ordered by ID.
func (s *BlankService) ReadWithFilter(ctx context.Context, f store.Filter) ([]model.Blank, error) {
	return store.ListBlanksWhere(ctx, s.db, f)
}

// List resolves a ListQuery to a lookup by ID, a series+number pattern,
// an activation date, or everything.
func (s *BlankService) List(ctx context.Context, q ListQuery) ([]model.Blank, error) {
	switch {
	case q.ID != nil:
		b, err := s.Get(ctx, *q.ID)
		if err != nil || b == nil {
			return nil, err
		}
		return []model.Blank{*b}, nil
	case q.Number != "":
		return s.ReadWithFilter(ctx, store.NumberLike(q.Number))
	case q.Date != nil:
		return s.ReadWithFilter(ctx, store.DateEquals(*q.Date))
	default:
		return s.Read(ctx)
	}
}

// Update applies the supplied fields of u and reports whether a live blank
// was matched.
func (s *BlankService) Update(ctx context.Context, id int64, u model.BlankUpdate) (bool, error) {
	if err := model.ValidateUpdate(u); err != nil {
		return false, err
	}

	var ok bool
	err := store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		ok, err = store.UpdateBlank(ctx, tx, id, u)
		return err
	})
	if err != nil {
		return false, err
	}

	if ok {
		s.publish(ctx, amqp.NewBlankEvent(amqp.EventBlankUpdated, id))
	}
	return ok, nil
}

// UpdateAndGet applies u and returns the blank as committed, read in the
// same transaction. It returns nil if no live blank was matched.
func (s *BlankService) UpdateAndGet(ctx context.Context, id int64, u model.BlankUpdate) (*model.Blank, error) {
	if err := model.ValidateUpdate(u); err != nil {
		return nil, err
	}

	var blank *model.Blank
	err := store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		ok, err := store.UpdateBlank(ctx, tx, id, u)
		if err != nil || !ok {
			return err
		}
		blank, err = store.GetBlank(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if blank != nil {
		s.publish(ctx, amqp.NewBlankEvent(amqp.EventBlankUpdated, id))
	}
	return blank, nil
}

// Delete soft-deletes a blank and reports whether a live row was matched.
func (s *BlankService) Delete(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := store.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		ok, err = store.DeleteBlank(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	if ok {
		s.publish(ctx, amqp.NewBlankEvent(amqp.EventBlankDeleted, id))
	}
	return ok, nil
}

func (s *BlankService) publish(ctx context.Context, e *amqp.BlankEvent) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "event publisher not configured, skipping event", "type", e.Type)
		return
	}

	// The change is committed; a failed publish does not fail the request.
	if err := s.publisher.PublishBlankEvent(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish blank event", "type", e.Type, "error", err)
	}
}

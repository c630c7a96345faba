package services

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/bso/internal/amqp"
	"github.com/erazemk/bso/internal/db"
	"github.com/erazemk/bso/internal/model"
)

type recordingPublisher struct {
	events []*amqp.BlankEvent
	err    error
}

func (p *recordingPublisher) PublishBlankEvent(_ context.Context, e *amqp.BlankEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func setupService(t *testing.T) (*BlankService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return NewBlankService(db.NewTestDB(t), pub), pub
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	date := model.NewDate(2024, 12, 12)
	in := model.Blank{Series: "AF", Number: 1, Date: &date, Comment: "returned", Status: model.StatusSpoiled}
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected blank, got nil")
	}
	if got.Series != in.Series || got.Number != in.Number || got.Comment != in.Comment || got.Status != in.Status {
		t.Errorf("got %+v, want %+v", got, in)
	}
	if got.Date == nil || !got.Date.Equal(date.Time) {
		t.Errorf("expected date %s, got %v", date, got.Date)
	}
}

func TestCreateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"ascending", 100, 115},
		{"inverted bounds", 115, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub := setupService(t)
			ctx := context.Background()

			n, err := svc.CreateRange(ctx, model.BlankRange{Series: "AF", Start: tt.start, End: tt.end})
			if err != nil {
				t.Fatalf("CreateRange: %v", err)
			}
			if n != 16 {
				t.Errorf("expected 16 blanks created, got %d", n)
			}

			blanks, err := svc.Read(ctx)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(blanks) != 16 {
				t.Fatalf("expected 16 rows, got %d", len(blanks))
			}
			for i, b := range blanks {
				if b.Series != "AF" || b.Number != 100+i {
					t.Errorf("row %d: got %s %d, want AF %d", i, b.Series, b.Number, 100+i)
				}
				if b.Status != model.StatusClean || b.Comment != "" || b.Date != nil {
					t.Errorf("row %d: expected a clean blank, got %+v", i, b)
				}
			}

			if len(pub.events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(pub.events))
			}
			e := pub.events[0]
			if e.Type != amqp.EventBlankCreated || e.Start != 100 || e.End != 115 {
				t.Errorf("unexpected event %+v", e)
			}
		})
	}
}

func TestCreateRangeConflictIsAtomic(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	if _, err := svc.CreateRange(ctx, model.BlankRange{Series: "AA", Start: 5, End: 6}); err != nil {
		t.Fatalf("CreateRange: %v", err)
	}

	_, err := svc.CreateRange(ctx, model.BlankRange{Series: "AA", Start: 1, End: 10})
	var conflict *model.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !errors.Is(err, model.ErrConflict) {
		t.Error("expected error to match ErrConflict")
	}
	if conflict.Series != "AA" || conflict.Start != 1 || conflict.End != 10 {
		t.Errorf("unexpected conflict %+v", conflict)
	}

	blanks, _ := svc.Read(ctx)
	if len(blanks) != 2 {
		t.Errorf("expected only the 2 pre-existing blanks to persist, got %d", len(blanks))
	}
	if len(pub.events) != 1 {
		t.Errorf("expected no event for the failed batch, got %d events", len(pub.events))
	}

	// The same numbers in another series do not conflict.
	if _, err := svc.CreateRange(ctx, model.BlankRange{Series: "AB", Start: 1, End: 10}); err != nil {
		t.Errorf("CreateRange in another series: %v", err)
	}
}

func TestCreateConflict(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, model.Blank{Series: "ЖЖ", Number: 7}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, model.Blank{Series: "ЖЖ", Number: 7})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestValidationHappensBeforeStore(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		r     model.BlankRange
		field string
	}{
		{"lowercase series", model.BlankRange{Series: "af", Start: 1, End: 2}, "series"},
		{"long series", model.BlankRange{Series: "AFF", Start: 1, End: 2}, "series"},
		{"zero start", model.BlankRange{Series: "AF", Start: 0, End: 2}, "start"},
		{"end above maximum", model.BlankRange{Series: "AF", Start: 1, End: model.MaxNumber + 1}, "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRange(ctx, tt.r)
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}

	if blanks, _ := svc.Read(ctx); len(blanks) != 0 {
		t.Errorf("expected no rows after rejected input, got %d", len(blanks))
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.events))
	}
}

func TestUpdateIsolation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	date := model.NewDate(2024, 11, 30)
	id, _ := svc.Create(ctx, model.Blank{Series: "AB", Number: 3, Date: &date, Status: model.StatusUse})
	before, _ := svc.Get(ctx, id)

	ok, err := svc.Update(ctx, id, model.BlankUpdate{Comment: model.Some("x")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("expected update to match")
	}

	after, _ := svc.Get(ctx, id)
	if after.Comment != "x" {
		t.Errorf("expected comment x, got %q", after.Comment)
	}
	if after.Status != before.Status || after.Series != before.Series || after.Number != before.Number {
		t.Errorf("fields changed: before %+v after %+v", before, after)
	}
	if after.Date == nil || after.Date.String() != before.Date.String() {
		t.Errorf("date changed: before %v after %v", before.Date, after.Date)
	}
	if after.UpdatedAt == nil {
		t.Error("expected updated_at to be set")
	}
}

func TestUpdateExplicitZeroValues(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	date := model.NewDate(2024, 11, 30)
	id, _ := svc.Create(ctx, model.Blank{Series: "AB", Number: 3, Date: &date, Comment: "c", Status: model.StatusLost})

	_, err := svc.Update(ctx, id, model.BlankUpdate{
		Date:    model.Null[model.Date](),
		Comment: model.Some(""),
		Status:  model.Some(model.StatusClean),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := svc.Get(ctx, id)
	if got.Date != nil || got.Comment != "" || got.Status != model.StatusClean {
		t.Errorf("expected explicit zero values to overwrite, got %+v", got)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Update(context.Background(), 1, model.BlankUpdate{Status: model.Some(model.Status(9))})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc, pub := setupService(t)

	ok, err := svc.Update(context.Background(), 404, model.BlankUpdate{Comment: model.Some("x")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ok {
		t.Error("expected no match for a missing blank")
	}
	if len(pub.events) != 0 {
		t.Errorf("expected no events, got %d", len(pub.events))
	}
}

func TestUpdateAndGet(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	id, _ := svc.Create(ctx, model.Blank{Series: "AE", Number: 2, Status: model.StatusClean})

	got, err := svc.UpdateAndGet(ctx, id, model.BlankUpdate{Status: model.Some(model.StatusLost)})
	if err != nil {
		t.Fatalf("UpdateAndGet: %v", err)
	}
	if got == nil || got.Status != model.StatusLost || got.UpdatedAt == nil {
		t.Fatalf("expected updated lost blank, got %+v", got)
	}

	if _, err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	events := len(pub.events)

	got, err = svc.UpdateAndGet(ctx, id, model.BlankUpdate{Comment: model.Some("late")})
	if err != nil {
		t.Fatalf("UpdateAndGet after delete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a deleted blank, got %+v", got)
	}
	if len(pub.events) != events {
		t.Errorf("expected no event for an unmatched update, got %d new", len(pub.events)-events)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc, pub := setupService(t)
	ctx := context.Background()

	id, _ := svc.Create(ctx, model.Blank{Series: "AC", Number: 1})

	first, err := svc.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	second, err := svc.Delete(ctx, id)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !first {
		t.Error("expected first delete to match")
	}
	if second {
		t.Error("expected second delete to report no row affected")
	}

	if got, _ := svc.Get(ctx, id); got != nil {
		t.Errorf("expected deleted blank to be hidden, got %+v", got)
	}

	// created + deleted
	if len(pub.events) != 2 || pub.events[1].Type != amqp.EventBlankDeleted || pub.events[1].BlankID != id {
		t.Errorf("unexpected events %+v", pub.events)
	}
}

func TestListPrecedence(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	date := model.NewDate(2024, 12, 1)
	svc.CreateRange(ctx, model.BlankRange{Series: "AF", Start: 10, End: 19})
	dated, _ := svc.Create(ctx, model.Blank{Series: "AG", Number: 1, Date: &date, Status: model.StatusUse})
	missing := int64(9999)

	tests := []struct {
		name string
		q    ListQuery
		want int
	}{
		{"everything", ListQuery{}, 11},
		{"by id", ListQuery{ID: &dated}, 1},
		{"missing id", ListQuery{ID: &missing}, 0},
		{"id wins over number", ListQuery{ID: &dated, Number: "AF%"}, 1},
		{"number pattern", ListQuery{Number: "AF1%"}, 10},
		{"number wins over date", ListQuery{Number: "AF10", Date: &date}, 1},
		{"date", ListQuery{Date: &date}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.q)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d blanks, got %d", tt.want, len(got))
			}
		})
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewBlankService(db.NewTestDB(t), pub)

	if _, err := svc.CreateRange(context.Background(), model.BlankRange{Series: "AA", Start: 1, End: 1}); err != nil {
		t.Fatalf("expected success despite publish failure, got %v", err)
	}
}

func TestNilPublisher(t *testing.T) {
	svc := NewBlankService(db.NewTestDB(t), nil)

	if _, err := svc.CreateRange(context.Background(), model.BlankRange{Series: "AA", Start: 1, End: 3}); err != nil {
		t.Fatalf("CreateRange: %v", err)
	}
}

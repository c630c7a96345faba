package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the stored and wire form of an activation date.
const DateLayout = "2006-01-02"

// TimestampLayout is the stored form of created/updated/deleted timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Date is a calendar date without a time of day.
type Date struct {
	time.Time
}

// NewDate creates a Date in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. A trailing time of day, as written by older
// rows, is accepted and dropped.
func ParseDate(s string) (Date, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD string"}
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return &ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD string"}
	}
	*d = parsed
	return nil
}

package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published for blank mutations.
const (
	EventBlankCreated = "blank.created"
	EventBlankUpdated = "blank.updated"
	EventBlankDeleted = "blank.deleted"
)

// BlankEvent describes a committed change to one or more blanks. Range
// creations carry Series/Start/End; updates and deletes carry BlankID.
type BlankEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Series    string    `json:"series,omitempty"`
	Start     int       `json:"start,omitempty"`
	End       int       `json:"end,omitempty"`
	BlankID   int64     `json:"blank_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRangeCreatedEvent creates an event for a committed range insert.
func NewRangeCreatedEvent(series string, start, end int) *BlankEvent {
	return &BlankEvent{
		ID:        uuid.New(),
		Type:      EventBlankCreated,
		Series:    series,
		Start:     start,
		End:       end,
		Timestamp: time.Now().UTC(),
	}
}

// NewBlankEvent creates an event of the given type for a single blank.
func NewBlankEvent(eventType string, blankID int64) *BlankEvent {
	return &BlankEvent{
		ID:        uuid.New(),
		Type:      eventType,
		BlankID:   blankID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *BlankEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// BlankEventFromJSON decodes an event from JSON bytes
func BlankEventFromJSON(data []byte) (*BlankEvent, error) {
	var e BlankEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

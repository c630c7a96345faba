package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the lifecycle state of a blank. The integer value is the
// discriminant stored in the database and used on the wire.
type Status int

const (
	StatusClean   Status = 0
	StatusUse     Status = 1
	StatusSpoiled Status = 2
	StatusLost    Status = 3
)

var statusNames = map[Status]string{
	StatusClean:   "clean",
	StatusUse:     "use",
	StatusSpoiled: "spoiled",
	StatusLost:    "lost",
}

// Statuses lists every status in discriminant order.
var Statuses = []Status{StatusClean, StatusUse, StatusSpoiled, StatusLost}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "status(" + strconv.Itoa(int(s)) + ")"
}

// ParseStatus accepts a status name or its numeric discriminant.
func ParseStatus(v string) (Status, error) {
	for s, name := range statusNames {
		if name == v {
			return s, nil
		}
	}
	n, err := strconv.Atoi(v)
	if err == nil && Status(n).Valid() {
		return Status(n), nil
	}
	return 0, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", v)}
}

// MarshalJSON encodes the numeric discriminant.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON accepts either the discriminant or the status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return &ValidationError{Field: "status", Reason: "must be a number or a status name"}
	}
	if !Status(n).Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %d", n)}
	}
	*s = Status(n)
	return nil
}

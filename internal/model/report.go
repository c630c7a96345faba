package model

import (
	"encoding/json"
	"fmt"
)

// Range is an inclusive run of consecutive numbers. It encodes as a
// two-element JSON array.
type Range struct {
	Start int
	End   int
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Start, r.End})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decoding range: %w", err)
	}
	r.Start, r.End = pair[0], pair[1]
	return nil
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprint(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// SeriesNumber is one (number, series) row as returned by a report query.
type SeriesNumber struct {
	Number int
	Series string
}

// SeriesRanges maps a series to its compressed ranges.
type SeriesRanges map[string][]Range

// Report is the monthly audit of blank usage.
type Report struct {
	Use          SeriesRanges `json:"use"`
	New          SeriesRanges `json:"new"`
	Spoiled      SeriesRanges `json:"spoiled"`
	Lost         SeriesRanges `json:"lost"`
	CleanAtBegin SeriesRanges `json:"clean_at_begin"`
	CleanAtEnd   SeriesRanges `json:"clean_at_end"`
}

package model

import "time"

// MaxNumber is the largest number a blank can carry.
const MaxNumber = 9_999_999

// Blank represents a single serially numbered controlled form.
type Blank struct {
	ID        int64      `json:"id"`
	Series    string     `json:"series" validate:"series"`
	Number    int        `json:"number" validate:"min=1,max=9999999"`
	Date      *Date      `json:"date"`
	Comment   string     `json:"comment"`
	Status    Status     `json:"status" validate:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// BlankRange is an inclusive range of numbers within one series.
// Start may be greater than End; Normalize swaps them.
type BlankRange struct {
	Series string `json:"series" validate:"series"`
	Start  int    `json:"start" validate:"min=1,max=9999999"`
	End    int    `json:"end" validate:"min=1,max=9999999"`
}

// Normalize returns the range with Start <= End.
func (r BlankRange) Normalize() BlankRange {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Len returns the number of blanks in the range.
func (r BlankRange) Len() int {
	n := r.Normalize()
	return n.End - n.Start + 1
}

// BlankUpdate carries the fields a partial update may touch. Fields that
// were not supplied are left unchanged.
type BlankUpdate struct {
	Date    Field[Date]   `json:"date"`
	Comment Field[string] `json:"comment"`
	Status  Field[Status] `json:"status"`
}

// IsEmpty reports whether no field was supplied.
func (u BlankUpdate) IsEmpty() bool {
	return !u.Date.Set && !u.Comment.Set && !u.Status.Set
}

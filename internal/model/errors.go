package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrConflict matches every *ConflictError.
	ErrConflict = errors.New("blank already exists")
)

// ValidationError reports malformed input detected before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError reports a (series, number) uniqueness violation. The whole
// batch it belongs to has been rolled back.
type ConflictError struct {
	Series string
	Start  int
	End    int
	Err    error
}

func (e *ConflictError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("blank %s %d already exists", e.Series, e.Start)
	}
	return fmt.Sprintf("blanks %s %d..%d overlap existing numbers", e.Series, e.Start, e.End)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

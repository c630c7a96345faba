package model

import (
	"bytes"
	"encoding/json"
)

// Field is an optionally supplied value with three states: not supplied
// (Set is false), explicitly cleared (Set and Null), or set to Value.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a field supplied with v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a field supplied as an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only called when the key is present, which is what
// distinguishes "not supplied" from "supplied as null".
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

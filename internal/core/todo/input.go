package todo

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON key was present in a request and, if so,
// whether it carried null. The zero value means the key was absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns a present Optional that carried an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present reports whether the key was sent with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// IsZero lets `omitzero` drop absent keys when marshaling.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Input is the sparse request model shared by create and update. Keys that
// are absent from the request body stay unset, which update treats as
// "leave unchanged".
type Input struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Category    Optional[string] `json:"category,omitzero"`
	Priority    Optional[string] `json:"priority,omitzero"`
	DueDate     Optional[string] `json:"dueDate,omitzero"`
	Progress    Optional[string] `json:"progress,omitzero"`
}

// nullable maps an explicitly sent value to its stored form: null and ""
// both clear the field.
func nullable(o Optional[string]) *string {
	if !o.Present() || o.Value == "" {
		return nil
	}
	v := o.Value
	return &v
}

// Package patch provides a presence-aware optional value used by sparse
// update requests.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field holds an optional value decoded from a JSON body.
//
// An absent key leaves the zero Field (not present). An explicit JSON null
// marks the field present but null. Any other value marks it set.
type Field[T any] struct {
	value   T
	present bool
	null    bool
}

// Set builds a Field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// IsSet reports whether the field carries a non-null value.
func (f Field[T]) IsSet() bool {
	return f.present && !f.null
}

// Get returns the value and whether it is set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.IsSet()
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON implements json.Marshaler. Unset fields encode as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

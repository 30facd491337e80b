package domain

import (
	"encoding/json"
	"time"
)

// Field is a tri-state JSON value: absent from the body, explicit null, or a
// concrete value. Explicit null is how a caller clears an optional field, so
// it must not collapse into "untouched".
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

// Present reports whether the field carries an actual value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// TaskPatch is the wire shape for both create and partial update. Priority is
// decoded as float64 so that a non-integer number reaches validation instead
// of failing as a decode error.
type TaskPatch struct {
	Title       Field[string]    `json:"title"`
	Description Field[string]    `json:"description"`
	Status      Field[Status]    `json:"status"`
	Priority    Field[float64]   `json:"priority"`
	DueDate     Field[time.Time] `json:"dueDate"`
	Project     Field[Project]   `json:"project"`
}

// PriorityInt returns the priority as an int. Only meaningful after the patch
// passed validation.
func (p TaskPatch) PriorityInt() int {
	return int(p.Priority.Value)
}

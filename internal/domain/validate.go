package domain

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks a patch against the schema rules and reports every
// violation, not just the first. forCreate additionally requires a title.
// A nil return means the patch is acceptable as-is.
func Validate(p TaskPatch, forCreate bool) error {
	var fields []FieldError

	if p.Title.Set || forCreate {
		title := strings.TrimSpace(p.Title.Value)
		switch {
		case p.Title.Null || title == "":
			fields = append(fields, FieldError{Field: "title", Message: "Title is required"})
		case len([]rune(title)) > MaxTitleLen:
			fields = append(fields, FieldError{
				Field:   "title",
				Message: fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLen),
			})
		}
	}

	if p.Description.Present() {
		if len([]rune(strings.TrimSpace(p.Description.Value))) > MaxDescriptionLen {
			fields = append(fields, FieldError{
				Field:   "description",
				Message: fmt.Sprintf("Description cannot exceed %d characters", MaxDescriptionLen),
			})
		}
	}

	if p.Status.Present() && !p.Status.Value.Valid() {
		fields = append(fields, FieldError{
			Field:   "status",
			Message: "Status must be one of: todo, in-progress, done",
		})
	}

	// Explicit null clears the priority and is always valid.
	if p.Priority.Present() {
		v := p.Priority.Value
		switch {
		case v != math.Trunc(v):
			fields = append(fields, FieldError{Field: "priority", Message: "Priority must be an integer"})
		case v < MinPriority:
			fields = append(fields, FieldError{Field: "priority", Message: fmt.Sprintf("Priority must be at least %d", MinPriority)})
		case v > MaxPriority:
			fields = append(fields, FieldError{Field: "priority", Message: fmt.Sprintf("Priority must be at most %d", MaxPriority)})
		}
	}

	if p.Project.Present() && !p.Project.Value.Valid() {
		fields = append(fields, FieldError{
			Field:   "project",
			Message: "Project must be one of: personal, work, shopping, health, finance, other",
		})
	}

	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

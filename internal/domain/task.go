package domain

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// StatusRank gives the fixed ordering used when sorting by status:
// todo < in-progress < done.
func StatusRank(s Status) int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	default:
		return 0
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Project string

const (
	ProjectPersonal Project = "personal"
	ProjectWork     Project = "work"
	ProjectShopping Project = "shopping"
	ProjectHealth   Project = "health"
	ProjectFinance  Project = "finance"
	ProjectOther    Project = "other"
)

func (p Project) Valid() bool {
	switch p {
	case ProjectPersonal, ProjectWork, ProjectShopping, ProjectHealth, ProjectFinance, ProjectOther:
		return true
	}
	return false
}

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
	MinPriority       = 1
	MaxPriority       = 9
)

// Task is the persisted entity. Optional fields are pointers: nil means the
// field is absent, which is distinct from a zero value.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    *int       `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Project     *Project   `json:"project,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

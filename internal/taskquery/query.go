package taskquery

// ViewMode is the coarse pre-filter applied before the finer filters.
type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewToday     ViewMode = "today"
	ViewUpcoming  ViewMode = "upcoming"
	ViewCompleted ViewMode = "completed"
)

type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortTitle     SortField = "title"
	SortStatus    SortField = "status"
	SortPriority  SortField = "priority"
	SortDueDate   SortField = "dueDate"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FilterAll is the selector value meaning "no filtering on this field".
// The zero value of each filter field means the same thing, so a zero Query
// (plus defaults from DefaultQuery) passes everything through.
const FilterAll = "all"

// Query is the descriptor driving one pipeline run. It is treated as an
// immutable value: UI updates build a new Query rather than mutating one in
// place.
type Query struct {
	View     ViewMode
	Status   string // "all", "todo", "in-progress", "done"
	Project  string // "all" or a project value
	Priority int    // 0 means all, otherwise exact match on 1..9
	Search   string // free text, matched case-insensitively

	SortField SortField
	SortOrder SortOrder
}

// DefaultQuery mirrors the initial UI state: everything visible, newest first.
func DefaultQuery() Query {
	return Query{
		View:      ViewAll,
		Status:    FilterAll,
		Project:   FilterAll,
		SortField: SortCreatedAt,
		SortOrder: OrderDesc,
	}
}

func filterInactive(v string) bool {
	return v == "" || v == FilterAll
}

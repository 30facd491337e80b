package taskquery

import (
	"slices"
	"strings"
	"time"

	"todai/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// upcomingWindowDays bounds the "upcoming" view: strictly after today,
// at most this many days ahead.
const upcomingWindowDays = 7

// Apply runs the full filter -> sort pipeline over the collection and returns
// a new slice. The input is never mutated; running Apply twice with the same
// arguments yields the same output. "now" anchors the today/upcoming windows
// and supplies the location for calendar-day comparisons.
func Apply(now time.Time, tasks []domain.Task, q Query) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(now, t, q) {
			out = append(out, t)
		}
	}
	sortTasks(out, q)
	return out
}

func keep(now time.Time, t domain.Task, q Query) bool {
	if !inView(now, t, q.View) {
		return false
	}

	// The completed view already filters on status; an explicit status filter
	// must not override it.
	if q.View != ViewCompleted && !filterInactive(q.Status) {
		if string(t.Status) != q.Status {
			return false
		}
	}

	if !filterInactive(q.Project) {
		if t.Project == nil || string(*t.Project) != q.Project {
			return false
		}
	}

	if q.Priority != 0 {
		if t.Priority == nil || *t.Priority != q.Priority {
			return false
		}
	}

	if query := strings.TrimSpace(q.Search); query != "" {
		query = strings.ToLower(query)
		if !strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			return false
		}
	}

	return true
}

func inView(now time.Time, t domain.Task, view ViewMode) bool {
	switch view {
	case ViewToday:
		return t.DueDate != nil && midnight(*t.DueDate, now.Location()).Equal(midnight(now, now.Location()))
	case ViewUpcoming:
		if t.DueDate == nil {
			return false
		}
		today := midnight(now, now.Location())
		due := midnight(*t.DueDate, now.Location())
		// today < due <= today+7d
		return due.After(today) && !due.After(today.AddDate(0, 0, upcomingWindowDays))
	case ViewCompleted:
		return t.Status == domain.StatusDone
	default:
		return true
	}
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func sortTasks(tasks []domain.Task, q Query) {
	desc := q.SortOrder == OrderDesc
	dir := func(c int) int {
		if desc {
			return -c
		}
		return c
	}

	var col *collate.Collator
	if q.SortField == SortTitle {
		col = collate.New(language.English)
	}

	slices.SortStableFunc(tasks, func(a, b domain.Task) int {
		switch q.SortField {
		case SortTitle:
			return dir(col.CompareString(a.Title, b.Title))
		case SortStatus:
			return dir(domain.StatusRank(a.Status) - domain.StatusRank(b.Status))
		case SortPriority:
			return comparePriority(a.Priority, b.Priority, desc)
		case SortDueDate:
			return compareDueDate(a.DueDate, b.DueDate, desc)
		default:
			return dir(a.CreatedAt.Compare(b.CreatedAt))
		}
	})
}

// comparePriority orders present priorities by value in the requested
// direction, but a task without a priority always comes after any task with
// one, in both directions. That asymmetry is deliberate.
func comparePriority(a, b *int, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := *a - *b
	if desc {
		c = -c
	}
	return c
}

// compareDueDate applies the same always-last rule to absent due dates.
func compareDueDate(a, b *time.Time, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := a.Compare(*b)
	if desc {
		c = -c
	}
	return c
}

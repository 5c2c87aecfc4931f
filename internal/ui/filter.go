package ui

import (
	"strings"
	"time"

	"github.com/idilsaglam/todoapp/internal/model"
)

// DateFilter narrows the visible list by due date.
type DateFilter string

const (
	FilterAll       DateFilter = "all"
	FilterToday     DateFilter = "today"
	FilterYesterday DateFilter = "yesterday"
)

// Next cycles all → today → yesterday → all.
func (f DateFilter) Next() DateFilter {
	switch f {
	case FilterAll:
		return FilterToday
	case FilterToday:
		return FilterYesterday
	default:
		return FilterAll
	}
}

// dateLayout is the calendar-date form used by Todo.DueDate.
const dateLayout = "2006-01-02"

// FilterTodos applies the search and date predicates; an item must pass
// both to stay visible. Search is a case-insensitive substring match against
// Text. The date predicate compares DueDate to the local calendar date
// derived from now (today, or today minus one day).
func FilterTodos(todos []model.Todo, query string, f DateFilter, now time.Time) []model.Todo {
	q := strings.ToLower(query)
	want := ""
	switch f {
	case FilterToday:
		want = now.Format(dateLayout)
	case FilterYesterday:
		want = now.AddDate(0, 0, -1).Format(dateLayout)
	}

	out := make([]model.Todo, 0, len(todos))
	for _, td := range todos {
		if q != "" && !strings.Contains(strings.ToLower(td.Text), q) {
			continue
		}
		if want != "" && td.DueDate != want {
			continue
		}
		out = append(out, td)
	}
	return out
}

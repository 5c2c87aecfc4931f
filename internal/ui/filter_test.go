package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoapp/internal/model"
)

var filterNow = time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)

func sample() []model.Todo {
	return []model.Todo{
		{ID: "1", Text: "A", DueDate: "2024-01-01"},
		{ID: "2", Text: "B", DueDate: "2024-01-02"},
		{ID: "3", Text: "buy bread", DueDate: "2024-01-02"},
	}
}

func texts(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.Text
	}
	return out
}

func TestFilterAllNoQuery(t *testing.T) {
	got := FilterTodos(sample(), "", FilterAll, filterNow)
	require.Equal(t, []string{"A", "B", "buy bread"}, texts(got))
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	got := FilterTodos(sample(), "BREAD", FilterAll, filterNow)
	require.Equal(t, []string{"buy bread"}, texts(got))
}

func TestFilterToday(t *testing.T) {
	got := FilterTodos(sample(), "", FilterToday, filterNow)
	require.Equal(t, []string{"B", "buy bread"}, texts(got))
}

func TestFilterYesterday(t *testing.T) {
	// "today" simulated as 2024-01-02, so yesterday selects only "A".
	got := FilterTodos(sample(), "", FilterYesterday, filterNow)
	require.Equal(t, []string{"A"}, texts(got))
}

func TestFiltersCompose(t *testing.T) {
	// Both predicates must pass: "b" matches B and buy bread, yesterday
	// matches only A, so the intersection is empty.
	got := FilterTodos(sample(), "b", FilterYesterday, filterNow)
	require.Empty(t, got)

	got = FilterTodos(sample(), "b", FilterToday, filterNow)
	require.Equal(t, []string{"B", "buy bread"}, texts(got))
}

func TestFilterCycle(t *testing.T) {
	f := FilterAll
	f = f.Next()
	require.Equal(t, FilterToday, f)
	f = f.Next()
	require.Equal(t, FilterYesterday, f)
	f = f.Next()
	require.Equal(t, FilterAll, f)
}

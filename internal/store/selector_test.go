package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todoapp/internal/model"
)

func TestCurrentUserTodosAnonymous(t *testing.T) {
	s := New(State{})
	s.Dispatch(AddTodoForUser{UserEmail: "a@b.com", Text: "x", DueDate: "2024-01-01"})

	got := CurrentUserTodos(s.State())
	require.Empty(t, got)
}

func TestCurrentUserTodosReturnsExactList(t *testing.T) {
	s := New(State{})
	s.Dispatch(Login{User: model.User{Email: "a@b.com"}, Token: "t"})
	s.Dispatch(AddTodoForUser{UserEmail: "a@b.com", Text: "mine", DueDate: "2024-01-01"})
	s.Dispatch(AddTodoForUser{UserEmail: "other@x.com", Text: "theirs", DueDate: "2024-01-01"})

	st := s.State()
	require.True(t, SameSlice(st.Todos.UserTodos["a@b.com"], CurrentUserTodos(st)))
}

func TestSelectorIsReferentiallyStable(t *testing.T) {
	s := New(State{})
	s.Dispatch(Login{User: model.User{Email: "a@b.com"}, Token: "t"})
	s.Dispatch(AddTodoForUser{UserEmail: "a@b.com", Text: "x", DueDate: "2024-01-01"})

	var sel Selector
	first := sel.Select(s.State())
	second := sel.Select(s.State())
	require.True(t, SameSlice(first, second))

	// Unrelated transitions do not invalidate the memo.
	s.Dispatch(AddTodoForUser{UserEmail: "other@x.com", Text: "y", DueDate: "2024-01-01"})
	require.True(t, SameSlice(first, sel.Select(s.State())))

	// A transition on the selected user's list does.
	s.Dispatch(AddTodoForUser{UserEmail: "a@b.com", Text: "z", DueDate: "2024-01-01"})
	got := sel.Select(s.State())
	require.False(t, SameSlice(first, got))
	require.Len(t, got, 2)
}

func TestSelectorSwitchesUsers(t *testing.T) {
	s := New(State{})
	s.Dispatch(AddTodoForUser{UserEmail: "a@b.com", Text: "a", DueDate: "2024-01-01"})
	s.Dispatch(AddTodoForUser{UserEmail: "c@d.com", Text: "c", DueDate: "2024-01-01"})

	var sel Selector
	s.Dispatch(Login{User: model.User{Email: "a@b.com"}, Token: "t"})
	require.Equal(t, "a", sel.Select(s.State())[0].Text)

	s.Dispatch(Login{User: model.User{Email: "c@d.com"}, Token: "t"})
	require.Equal(t, "c", sel.Select(s.State())[0].Text)
}

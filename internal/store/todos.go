package store

import (
	"github.com/gofrs/uuid/v5"

	"github.com/idilsaglam/todoapp/internal/model"
)

// AddTodoForUser appends a new item, Completed=false, with a fresh id, to
// the user's list, creating the list if absent. The new item is always last.
type AddTodoForUser struct {
	UserEmail string
	Text      string
	DueDate   string
}

// ToggleTodo flips Completed on the matching item. No-op if the user or id
// is unknown.
type ToggleTodo struct {
	UserEmail string
	TodoID    string
}

// EditTodo overwrites Text/DueDate in place, preserving id, Completed and
// position. No-op if not found.
type EditTodo struct {
	UserEmail string
	ID        string
	Text      string
	DueDate   string
}

// DeleteTodo removes the matching item, preserving the relative order of the
// rest. No-op if the user or id is unknown.
type DeleteTodo struct {
	UserEmail string
	TodoID    string
}

// SetUserTodos replaces one user's list wholesale.
type SetUserTodos struct {
	UserEmail string
	Todos     []model.Todo
}

func (AddTodoForUser) isAction() {}
func (ToggleTodo) isAction()     {}
func (EditTodo) isAction()       {}
func (DeleteTodo) isAction()     {}
func (SetUserTodos) isAction()   {}

// Reducers are copy-on-write on the per-user slice: a user's slice identity
// changes exactly when that user's list changed, which is what the memoized
// selector keys on. Untouched users keep their slices.

func reduceTodos(st model.TodosState, a Action) model.TodosState {
	switch a := a.(type) {
	case AddTodoForUser:
		id, _ := uuid.NewV4()
		list := st.UserTodos[a.UserEmail]
		next := make([]model.Todo, len(list), len(list)+1)
		copy(next, list)
		next = append(next, model.Todo{
			ID:      id.String(),
			Text:    a.Text,
			DueDate: a.DueDate,
		})
		return withList(st, a.UserEmail, next)

	case ToggleTodo:
		list, i := find(st, a.UserEmail, a.TodoID)
		if i < 0 {
			return st
		}
		next := append([]model.Todo(nil), list...)
		next[i].Completed = !next[i].Completed
		return withList(st, a.UserEmail, next)

	case EditTodo:
		list, i := find(st, a.UserEmail, a.ID)
		if i < 0 {
			return st
		}
		next := append([]model.Todo(nil), list...)
		next[i].Text = a.Text
		next[i].DueDate = a.DueDate
		return withList(st, a.UserEmail, next)

	case DeleteTodo:
		list, i := find(st, a.UserEmail, a.TodoID)
		if i < 0 {
			return st
		}
		next := make([]model.Todo, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		return withList(st, a.UserEmail, next)

	case SetUserTodos:
		return withList(st, a.UserEmail, a.Todos)
	}
	return st
}

func find(st model.TodosState, email, id string) ([]model.Todo, int) {
	list, ok := st.UserTodos[email]
	if !ok {
		return nil, -1
	}
	for i := range list {
		if list[i].ID == id {
			return list, i
		}
	}
	return list, -1
}

// withList returns st with one user's list replaced. The map itself is
// copied so previously returned State values stay stable for subscribers.
func withList(st model.TodosState, email string, list []model.Todo) model.TodosState {
	m := make(map[string][]model.Todo, len(st.UserTodos)+1)
	for k, v := range st.UserTodos {
		m[k] = v
	}
	m[email] = list
	return model.TodosState{UserTodos: m}
}

package store

import "github.com/idilsaglam/todoapp/internal/model"

// emptyTodos is the canonical result for the anonymous case, so repeated
// calls stay referentially stable.
var emptyTodos = []model.Todo{}

// CurrentUserTodos returns the authenticated user's list, or an empty slice
// when nobody is logged in. For memoized access use Selector.
func CurrentUserTodos(st State) []model.Todo {
	if st.Auth.User == nil {
		return emptyTodos
	}
	list := st.Todos.UserTodos[st.Auth.User.Email]
	if list == nil {
		return emptyTodos
	}
	return list
}

// Selector is a memoized view of the current user's list: Select returns
// the same slice value as long as its inputs (user email, that user's slice)
// are unchanged, so downstream filtering can key on slice identity.
// The zero value is ready to use. Not safe for concurrent use.
type Selector struct {
	valid     bool
	lastEmail string
	lastIn    []model.Todo
	lastOut   []model.Todo
}

// Select derives the current user's list from st.
func (s *Selector) Select(st State) []model.Todo {
	if st.Auth.User == nil {
		s.valid = false
		return emptyTodos
	}
	email := st.Auth.User.Email
	in := st.Todos.UserTodos[email]
	if s.valid && s.lastEmail == email && SameSlice(s.lastIn, in) {
		return s.lastOut
	}
	out := in
	if out == nil {
		out = emptyTodos
	}
	s.valid = true
	s.lastEmail = email
	s.lastIn = in
	s.lastOut = out
	return out
}

// SameSlice reports whether two slices are the same value (length and
// backing array). Reducers are copy-on-write, so identity implies equality.
func SameSlice(a, b []model.Todo) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

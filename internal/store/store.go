// Package store is the in-memory state container: one State value owned by
// the process, mutated only through Dispatch, observed through Subscribe.
// Subscribers run synchronously after every transition, in registration
// order; persistence is just one subscriber among possibly several.
package store

import (
	"sync"

	"github.com/idilsaglam/todoapp/internal/model"
)

// State is the full application state. It is also the persisted snapshot
// shape: the JSON tags here define the durable-storage format.
type State struct {
	Auth  model.AuthState  `json:"auth"`
	Todos model.TodosState `json:"todos"`
}

// Action is a state transition request. The concrete types live in auth.go
// and todos.go.
type Action interface {
	isAction()
}

// Store holds State and notifies subscribers after each dispatch.
//
// The container performs no authorization: to-do actions carry an explicit
// UserEmail and the caller is responsible for supplying the current user's
// key. That contract is enforced at the view layer, not here.
type Store struct {
	mu    sync.Mutex
	state State
	subs  []func(State)
}

// New creates a store seeded with initial state, normalizing a nil user map
// so reducers never have to check for it.
func New(initial State) *Store {
	if initial.Todos.UserTodos == nil {
		initial.Todos.UserTodos = make(map[string][]model.Todo)
	}
	return &Store{state: initial}
}

// State returns the current state value.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every subsequent transition.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Dispatch applies a to the current state and notifies subscribers with the
// resulting state. Unknown action types leave the state unchanged.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = State{
		Auth:  reduceAuth(s.state.Auth, a),
		Todos: reduceTodos(s.state.Todos, a),
	}
	st := s.state
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

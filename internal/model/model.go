// Package model defines the domain entities shared by the store, the
// persistence layer, and the UI.
package model

// User is the account cached after login/registration. The remote auth
// service is authoritative for it; we only hold a copy.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Todo is a single to-do entry. ID is opaque and immutable once created.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"dueDate"` // calendar date, YYYY-MM-DD
}

// AuthState holds the session. Invariant: IsLoggedIn is true exactly when
// User and Token are both set.
type AuthState struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	User       *User  `json:"user"`
	Token      string `json:"token"`
}

// TodosState maps a user's email to that user's ordered to-do list.
// Lists for different keys never intersect.
type TodosState struct {
	UserTodos map[string][]Todo `json:"userTodos"`
}

package store

import "github.com/idilsaglam/todoapp/internal/model"

// Login sets the session from a successful register/login response. It
// overwrites any previous session unconditionally, so re-login works.
type Login struct {
	User  model.User
	Token string
}

// Logout clears the session. Erasing the persisted snapshot is the caller's
// job (the logout flow removes the file after this dispatch settles).
type Logout struct{}

func (Login) isAction()  {}
func (Logout) isAction() {}

func reduceAuth(st model.AuthState, a Action) model.AuthState {
	switch a := a.(type) {
	case Login:
		u := a.User
		return model.AuthState{IsLoggedIn: true, User: &u, Token: a.Token}
	case Logout:
		return model.AuthState{}
	}
	return st
}

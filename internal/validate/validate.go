// Package validate holds the client-side form checks. All functions are
// pure: they return a field-keyed error map, empty on success, and never
// touch the network or the store.
package validate

import "regexp"

var (
	// Pattern check only; no calendar semantics (month 13 passes).
	dueDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// TodoInput is a to-do form submission.
type TodoInput struct {
	Text    string
	DueDate string
}

// SignupInput is an account registration submission.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Todo checks a to-do submission. Keys in the result are "text" and
// "dueDate"; each invalid field gets exactly one message.
func Todo(in TodoInput) map[string]string {
	errs := make(map[string]string)
	if in.Text == "" {
		errs["text"] = "To-Do text is required"
	}
	if !dueDateRe.MatchString(in.DueDate) {
		errs["dueDate"] = "Invalid date format"
	}
	return errs
}

// Signup checks a registration submission. Keys are "name", "email" and
// "password".
func Signup(in SignupInput) map[string]string {
	errs := make(map[string]string)
	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "Invalid email address"
	}
	if len(in.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs
}

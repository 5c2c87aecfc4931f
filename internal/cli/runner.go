// Package cli routes subcommands over the wired application pieces.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/todoapp/internal/api"
	"github.com/idilsaglam/todoapp/internal/config"
	"github.com/idilsaglam/todoapp/internal/model"
	"github.com/idilsaglam/todoapp/internal/store"
	"github.com/idilsaglam/todoapp/internal/store/jsonstore"
	"github.com/idilsaglam/todoapp/internal/ui"
	"github.com/idilsaglam/todoapp/internal/validate"
)

// App bundles the dependencies the subcommands work against.
type App struct {
	Store  *store.Store
	Bridge *jsonstore.Bridge
	API    *api.Client
	Cfg    *config.Config
	Log    *zap.Logger
	Stdin  io.Reader // prompt source; defaults to os.Stdin
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(app App, args []string) int {
	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Log == nil {
		app.Log = zap.NewNop()
	}
	if len(args) == 0 {
		return doDashboard(app)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "signup":
		return doSignup(app, a)

	case "login":
		return doLogin(app, a)

	case "logout":
		return doLogout(app)

	case "whoami":
		return doWhoAmI(app)

	case "ls":
		return doDashboard(app)

	case "add":
		return doAdd(app, a)

	case "done":
		if len(a) != 1 {
			ui.Fail("usage: todoapp done <id-prefix>")
			return 2
		}
		return doToggle(app, a[0])

	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: todoapp rm <id-prefix>")
			return 2
		}
		return doRemove(app, a[0])
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`todoapp - per-user to-do client

Usage:
  todoapp <subcommand> [args]

Subcommands:
  signup [-name N -email E -password P]   Create an account (prompts if no flags)
  login  [-email E -password P]           Sign in (prompts if no flags)
  logout                                  Sign out and erase the local snapshot
  whoami                                  Show the signed-in user and token expiry
  ls                                      Open the interactive dashboard (default)
  add [-due YYYY-MM-DD] <text...>         Add an item for the signed-in user
  done <id-prefix>                        Toggle completion by id prefix
  rm <id-prefix>                          Delete an item by id prefix

Examples:
  todoapp signup
  todoapp add -due 2024-06-01 "Buy milk"
  todoapp ls
`)
}

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func doSignup(app App, args []string) int {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	in := validate.SignupInput{
		Name:     strings.TrimSpace(*name),
		Email:    strings.TrimSpace(*email),
		Password: *password,
	}
	if in.Name == "" && in.Email == "" && in.Password == "" {
		in.Name = prompt(app, "Name: ")
		in.Email = prompt(app, "Email: ")
		in.Password = prompt(app, "Password: ")
	}

	// Validation failures block the network call entirely.
	if errs := validate.Signup(in); len(errs) > 0 {
		printFieldErrors(errs)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.Timeout())
	defer cancel()
	sess, err := app.API.Register(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	app.Store.Dispatch(store.Login{User: sess.User, Token: sess.Token})
	ui.OK("signed up as " + sess.User.Email)
	return 0
}

func doLogin(app App, args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	em, pw := strings.TrimSpace(*email), *password
	if em == "" {
		em = prompt(app, "Email: ")
	}
	if pw == "" {
		pw = prompt(app, "Password: ")
	}
	if em == "" || pw == "" {
		ui.Fail("login: email and password are required")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.Timeout())
	defer cancel()
	sess, err := app.API.Login(ctx, em, pw)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}

	app.Store.Dispatch(store.Login{User: sess.User, Token: sess.Token})
	ui.OK("logged in as " + sess.User.Email)
	return 0
}

func doLogout(app App) int {
	app.Store.Dispatch(store.Logout{})
	if app.Bridge != nil {
		app.Bridge.Erase()
	}
	ui.OK("logged out")
	return 0
}

func doWhoAmI(app App) int {
	st := app.Store.State()
	if !st.Auth.IsLoggedIn || st.Auth.User == nil {
		ui.Muted("not logged in")
		fmt.Println("Run: todoapp login")
		return 0
	}

	u := *st.Auth.User
	ctx, cancel := context.WithTimeout(context.Background(), app.Cfg.Timeout())
	defer cancel()
	fresh, err := app.API.Me(ctx, st.Auth.Token)
	switch {
	case err == nil:
		u = fresh
		// Keep the cached copy current; the token is unchanged.
		app.Store.Dispatch(store.Login{User: fresh, Token: st.Auth.Token})
	case errors.Is(err, api.ErrUnauthorized):
		app.Log.Warn("session rejected by server", zap.Error(err))
		ui.Fail(err.Error())
	default:
		app.Log.Warn("current-user lookup failed", zap.Error(err))
		ui.Muted("(offline, showing cached session)")
	}

	fmt.Printf("name:  %s\n", u.Name)
	fmt.Printf("email: %s\n", u.Email)
	if exp, ok := api.TokenExpiry(st.Auth.Token); ok {
		fmt.Printf("token expires: %s\n", exp.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("token expires: (unknown)")
	}
	return 0
}

// ---------------------------------------------------
// To-do subcommands
// ---------------------------------------------------

func doDashboard(app App) int {
	st := app.Store.State()
	if !st.Auth.IsLoggedIn {
		ui.Fail("not logged in. Run `todoapp login` or `todoapp signup`")
		return 2
	}
	loggedOut, err := ui.RunDashboard(app.Store, app.Bridge, app.Cfg.Debounce())
	if err != nil {
		ui.Fail("dashboard: " + err.Error())
		return 1
	}
	if loggedOut {
		ui.OK("logged out")
	}
	return 0
}

func doAdd(app App, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	due := fs.String("due", "", "due date (YYYY-MM-DD, defaults to today)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		ui.Fail("usage: todoapp add [-due YYYY-MM-DD] <text...>")
		return 2
	}

	user, code := ensureUser(app)
	if code != 0 {
		return code
	}

	in := validate.TodoInput{
		Text:    strings.TrimSpace(strings.Join(fs.Args(), " ")),
		DueDate: strings.TrimSpace(*due),
	}
	if in.DueDate == "" {
		in.DueDate = time.Now().Format("2006-01-02")
	}
	if errs := validate.Todo(in); len(errs) > 0 {
		printFieldErrors(errs)
		return 2
	}

	app.Store.Dispatch(store.AddTodoForUser{UserEmail: user.Email, Text: in.Text, DueDate: in.DueDate})
	ui.OK("added")
	return 0
}

func doToggle(app App, prefix string) int {
	user, code := ensureUser(app)
	if code != 0 {
		return code
	}
	td, err := findByPrefix(store.CurrentUserTodos(app.Store.State()), prefix)
	if err != nil {
		ui.Fail("done: " + err.Error())
		return 2
	}
	app.Store.Dispatch(store.ToggleTodo{UserEmail: user.Email, TodoID: td.ID})
	ui.OK("toggled")
	return 0
}

func doRemove(app App, prefix string) int {
	user, code := ensureUser(app)
	if code != 0 {
		return code
	}
	td, err := findByPrefix(store.CurrentUserTodos(app.Store.State()), prefix)
	if err != nil {
		ui.Fail("rm: " + err.Error())
		return 2
	}
	app.Store.Dispatch(store.DeleteTodo{UserEmail: user.Email, TodoID: td.ID})
	ui.OK("removed")
	return 0
}

// ---------------------------------------------------
// helpers
// ---------------------------------------------------

// ensureUser requires an authenticated session; to-do operations are always
// keyed by the signed-in user's email, which is supplied here.
func ensureUser(app App) (model.User, int) {
	st := app.Store.State()
	if !st.Auth.IsLoggedIn || st.Auth.User == nil {
		ui.Fail("not logged in. Run `todoapp login` or `todoapp signup`")
		return model.User{}, 2
	}
	return *st.Auth.User, 0
}

func findByPrefix(list []model.Todo, prefix string) (model.Todo, error) {
	var match model.Todo
	n := 0
	for _, td := range list {
		if strings.HasPrefix(td.ID, prefix) {
			match = td
			n++
		}
	}
	switch n {
	case 0:
		return model.Todo{}, fmt.Errorf("no todo with id prefix %q", prefix)
	case 1:
		return match, nil
	}
	return model.Todo{}, fmt.Errorf("id prefix %q is ambiguous (%d matches)", prefix, n)
}

func prompt(app App, label string) string {
	fmt.Print(label)
	r := bufio.NewReader(app.Stdin)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

// printFieldErrors reports validation errors in a stable field order.
func printFieldErrors(errs map[string]string) {
	for _, f := range []string{"name", "email", "password", "text", "dueDate"} {
		if msg, ok := errs[f]; ok {
			ui.Fail(f + ": " + msg)
		}
	}
}

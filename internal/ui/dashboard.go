// Package ui renders the interactive dashboard and the shared terminal
// styling helpers.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todoapp/internal/model"
	"github.com/idilsaglam/todoapp/internal/store"
	"github.com/idilsaglam/todoapp/internal/validate"
)

// SnapshotEraser lets the logout flow erase the persisted snapshot without
// this package depending on the storage layer.
type SnapshotEraser interface {
	Erase()
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
)

// debounceMsg fires after the search quiescence window. A stale sequence
// number means another keystroke arrived meanwhile and the tick is ignored.
type debounceMsg struct {
	seq int
}

// listItem adapts a Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

func (i listItem) Title() string       { return i.todo.Text }
func (i listItem) Description() string { return i.todo.DueDate }
func (i listItem) FilterValue() string { return i.todo.Text }

// Custom delegate: one line per item, checkbox + text + due date.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Text
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	due := mutedStyle.Render("due " + it.todo.DueDate)

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text+"  "+due)
}

type dashboard struct {
	store    *store.Store
	eraser   SnapshotEraser
	sel      store.Selector
	now      func() time.Time
	debounce time.Duration

	list list.Model
	mode mode

	// Search (debounced).
	search    textinput.Model
	searchSeq int
	query     string // effective query, applied after the quiescence window

	dateFilter DateFilter

	// Add/edit form. editingID == "" means add mode.
	textInput textinput.Model
	dueInput  textinput.Model
	formFocus int
	editingID string
	formErrs  map[string]string

	// Memoized filtered view, keyed on slice identity + query + filter.
	memoIn     []model.Todo
	memoQuery  string
	memoFilter DateFilter
	memoOut    []model.Todo
	memoOK     bool

	loggedOut     bool
	width, height int
}

func newDashboard(s *store.Store, eraser SnapshotEraser, debounce time.Duration, now func() time.Time) dashboard {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // search is ours, with debounce
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "date filter")),
		key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search todos..."
	search.CharLimit = 200

	text := textinput.New()
	text.Prompt = "> "
	text.Placeholder = "Enter todo description"
	text.CharLimit = 200

	due := textinput.New()
	due.Prompt = "> "
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	m := dashboard{
		store:      s,
		eraser:     eraser,
		now:        now,
		debounce:   debounce,
		list:       l,
		search:     search,
		textInput:  text,
		dueInput:   due,
		dateFilter: FilterAll,
		width:      80,
		height:     24,
	}
	m.refresh()
	return m
}

// currentEmail returns the signed-in user's email. The container itself does
// no authorization; this is the one place the dashboard picks the key for
// every dispatched action.
func (m *dashboard) currentEmail() (string, bool) {
	st := m.store.State()
	if st.Auth.User == nil {
		return "", false
	}
	return st.Auth.User.Email, true
}

// visibleFrom filters todos through the search and date predicates,
// recomputing only when an input changed.
func (m *dashboard) visibleFrom(todos []model.Todo) []model.Todo {
	if m.memoOK && store.SameSlice(m.memoIn, todos) &&
		m.memoQuery == m.query && m.memoFilter == m.dateFilter {
		return m.memoOut
	}
	out := FilterTodos(todos, m.query, m.dateFilter, m.now())
	m.memoIn = todos
	m.memoQuery = m.query
	m.memoFilter = m.dateFilter
	m.memoOut = out
	m.memoOK = true
	return out
}

// refresh rebuilds the list from the store.
func (m *dashboard) refresh() {
	st := m.store.State()
	todos := m.sel.Select(st)
	visible := m.visibleFrom(todos)

	items := make([]list.Item, len(visible))
	for i, td := range visible {
		items[i] = listItem{todo: td}
	}
	m.list.SetItems(items)

	done, pending := 0, 0
	for _, td := range todos {
		if td.Completed {
			done++
		} else {
			pending++
		}
	}
	name := ""
	if st.Auth.User != nil {
		name = st.Auth.User.Name
	}
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s",
		titleStyle.Render("My Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render(name),
	)
}

func (m *dashboard) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m *dashboard) openForm(editing *model.Todo) {
	m.mode = modeForm
	m.formErrs = nil
	m.formFocus = 0
	if editing != nil {
		m.editingID = editing.ID
		m.textInput.SetValue(editing.Text)
		m.dueInput.SetValue(editing.DueDate)
	} else {
		m.editingID = ""
		m.textInput.SetValue("")
		m.dueInput.SetValue("")
	}
	m.textInput.CursorEnd()
	m.textInput.Focus()
	m.dueInput.Blur()
}

func (m *dashboard) closeForm() {
	m.mode = modeList
	m.editingID = ""
	m.formErrs = nil
	m.textInput.SetValue("")
	m.dueInput.SetValue("")
	m.textInput.Blur()
	m.dueInput.Blur()
}

// submitForm validates and dispatches. Invalid input keeps the form open
// with inline field errors and touches nothing else.
func (m *dashboard) submitForm() {
	in := validate.TodoInput{
		Text:    strings.TrimSpace(m.textInput.Value()),
		DueDate: strings.TrimSpace(m.dueInput.Value()),
	}
	if errs := validate.Todo(in); len(errs) > 0 {
		m.formErrs = errs
		return
	}
	email, ok := m.currentEmail()
	if !ok {
		m.closeForm()
		return
	}
	if m.editingID != "" {
		m.store.Dispatch(store.EditTodo{UserEmail: email, ID: m.editingID, Text: in.Text, DueDate: in.DueDate})
	} else {
		m.store.Dispatch(store.AddTodoForUser{UserEmail: email, Text: in.Text, DueDate: in.DueDate})
	}
	m.closeForm()
	m.refresh()
}

// scheduleDebounce restarts the quiescence window after a search keystroke.
func (m *dashboard) scheduleDebounce() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func (m dashboard) Init() tea.Cmd { return nil }

func (m dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case debounceMsg:
		if msg.seq == m.searchSeq {
			m.query = m.search.Value()
			m.refresh()
		}
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeForm:
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

func (m dashboard) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.mode = modeList
			m.search.Blur()
			return m, nil
		case "esc":
			m.mode = modeList
			m.search.Blur()
			m.search.SetValue("")
			return m, m.scheduleDebounce()
		}
	}
	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.scheduleDebounce())
	}
	return m, cmd
}

func (m dashboard) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.submitForm()
			return m, nil
		case "esc":
			// Cancel discards the in-progress edit; the container is
			// never touched.
			m.closeForm()
			return m, nil
		case "tab", "shift+tab", "up", "down":
			m.formFocus = 1 - m.formFocus
			if m.formFocus == 0 {
				m.textInput.Focus()
				m.dueInput.Blur()
			} else {
				m.dueInput.Focus()
				m.textInput.Blur()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.formFocus == 0 {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m dashboard) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "L":
			m.store.Dispatch(store.Logout{})
			if m.eraser != nil {
				m.eraser.Erase()
			}
			m.loggedOut = true
			return m, tea.Quit

		case "/":
			m.mode = modeSearch
			m.search.Focus()
			return m, nil

		case "f":
			m.dateFilter = m.dateFilter.Next()
			m.refresh()
			return m, nil

		case "a":
			m.openForm(nil)
			return m, nil

		case "e":
			if td, ok := m.selected(); ok && !td.Completed {
				m.openForm(&td)
			}
			return m, nil

		case " ":
			if td, ok := m.selected(); ok {
				if email, ok := m.currentEmail(); ok {
					m.store.Dispatch(store.ToggleTodo{UserEmail: email, TodoID: td.ID})
					m.refresh()
				}
			}
			return m, nil

		case "d":
			if td, ok := m.selected(); ok {
				if email, ok := m.currentEmail(); ok {
					m.store.Dispatch(store.DeleteTodo{UserEmail: email, TodoID: td.ID})
					m.refresh()
				}
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m dashboard) View() string {
	listHeight := m.height - 6
	if m.mode == modeForm {
		listHeight = m.height - 10
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)

	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n")
	b.WriteString(m.list.View())

	if m.mode == modeForm {
		b.WriteString("\n")
		b.WriteString(m.formView())
	}

	return panelStyle.Width(m.width - 2).Render(b.String())
}

func (m dashboard) filterLine() string {
	parts := make([]string, 0, 3)
	for _, f := range []DateFilter{FilterAll, FilterToday, FilterYesterday} {
		label := string(f)
		if f == m.dateFilter {
			parts = append(parts, selectedStyle.Render(" "+label+" "))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m dashboard) formView() string {
	title := "Add New Todo"
	if m.editingID != "" {
		title = "Edit Todo"
	}

	lines := []string{titleStyle.Render(title)}
	lines = append(lines, "Todo: "+m.textInput.View())
	if msg := m.formErrs["text"]; msg != "" {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, "Due Date: "+m.dueInput.View())
	if msg := m.formErrs["dueDate"]; msg != "" {
		lines = append(lines, errorStyle.Render(msg))
	}
	lines = append(lines, helpStyle.Render("enter submit • tab switch field • esc cancel"))

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// RunDashboard opens the interactive dashboard and blocks until the user
// quits or logs out. It reports whether the session ended with a logout.
func RunDashboard(s *store.Store, eraser SnapshotEraser, debounce time.Duration) (bool, error) {
	m := newDashboard(s, eraser, debounce, time.Now)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(dashboard)
	if !ok {
		return false, nil
	}
	return fm.loggedOut, nil
}

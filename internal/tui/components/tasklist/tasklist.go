package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
)

type AddTaskMsg struct{}

type RenameTaskMsg struct {
	Task *models.Task
}

type DeleteTaskMsg struct {
	Task *models.Task
}

type ToggleDoneMsg struct {
	Task *models.Task
}

type Item struct {
	Task *models.Task
	Done bool
}

func (i Item) Title() string {
	if i.Done {
		return "[x] " + i.Task.Name
	}
	return "[ ] " + i.Task.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("done %d times", len(i.Task.Times))
	if last, ok := i.Task.LastTime(); ok {
		desc += " | last " + last.Time.Local().Format(constants.DisplayTimeFormat)
	}
	if i.Task.DetailsText != "" {
		desc += " | has details"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Name }

type KeyMap struct {
	Add    key.Binding
	Rename key.Binding
	Delete key.Binding
	Done   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Done: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "toggle done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Rename, keys.Delete, keys.Done}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Rename, keys.Delete, keys.Done}
	}

	return Model{list: l, keys: keys}
}

// SetTasks replaces the rows, marking those done reports as done this session
func (m *Model) SetTasks(tasks []*models.Task, done func(*models.Task) bool) {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t, Done: done(t)}
	}
	m.list.SetItems(items)
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Rename):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return RenameTaskMsg{Task: i.Task} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{Task: i.Task} }
			}
		case key.Matches(msg, m.keys.Done):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleDoneMsg{Task: i.Task} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No tasks yet.\n  Press 'a' to add one, or 'e' on the Goals tab to write details."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

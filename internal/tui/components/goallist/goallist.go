package goallist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
)

type Kind int

const (
	KindCategory Kind = iota
	KindGoal
)

type OpenGoalMsg struct {
	Goal *models.Goal
}

type AddGoalMsg struct {
	CategoryID int64
}

type AddCategoryMsg struct {
	ParentID int64
}

type RenameMsg struct {
	Item Item
}

type DeleteMsg struct {
	Item Item
}

type EditDetailsMsg struct {
	Goal *models.Goal
}

type ToggleLinesMsg struct {
	Goal *models.Goal
}

type ToggleMarkdownMsg struct {
	Goal *models.Goal
}

// Item is one row of the flattened category tree
type Item struct {
	Kind     Kind
	Depth    int
	Category *models.Category
	Goal     *models.Goal
}

func (i Item) ID() int64 {
	if i.Kind == KindGoal {
		return i.Goal.ID
	}
	return i.Category.ID
}

func (i Item) Name() string {
	if i.Kind == KindGoal {
		return i.Goal.Name
	}
	return i.Category.Name
}

// CategoryID is the category new goals or sub-categories go into when this row is selected
func (i Item) CategoryID() int64 {
	if i.Kind == KindGoal {
		return i.Goal.CategoryID
	}
	return i.Category.ID
}

func (i Item) Title() string {
	indent := strings.Repeat("  ", i.Depth)
	if i.Kind == KindGoal {
		return indent + "• " + i.Goal.Name
	}
	return indent + "▸ " + i.Category.Name
}

func (i Item) Description() string {
	indent := strings.Repeat("  ", i.Depth)
	if i.Kind == KindCategory {
		return fmt.Sprintf("%s  %d goals", indent, len(i.Category.Goals))
	}

	desc := fmt.Sprintf("%s  %d tasks", indent, len(i.Goal.Tasks))
	if last, ok := i.Goal.LastDone(); ok {
		desc += " | last done " + last.Local().Format(constants.DisplayTimeFormat)
	} else {
		desc += " | never done"
	}
	if i.Goal.CreateTaskFromEachLine {
		desc += " | lines"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Name() }

// Rows flattens the tree depth first. Goals inside each category follow mode.
func Rows(data *models.Data, mode constants.SortMode, now time.Time) []Item {
	var items []Item
	var visit func(c *models.Category, depth int)
	visit = func(c *models.Category, depth int) {
		items = append(items, Item{Kind: KindCategory, Depth: depth, Category: c})
		for _, g := range models.SortGoals(c.Goals, mode, now) {
			items = append(items, Item{Kind: KindGoal, Depth: depth + 1, Goal: g, Category: c})
		}
		for _, child := range c.Categories {
			visit(child, depth+1)
		}
	}
	for _, c := range data.Categories {
		visit(c, 0)
	}
	return items
}

type KeyMap struct {
	Open           key.Binding
	Add            key.Binding
	AddCategory    key.Binding
	Rename         key.Binding
	Delete         key.Binding
	Details        key.Binding
	ToggleLines    key.Binding
	ToggleMarkdown key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "tasks"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		AddCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add category"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Details: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit details"),
		),
		ToggleLines: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "task per line"),
		),
		ToggleMarkdown: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "markdown"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Rename, keys.Delete, keys.Details}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Add, keys.AddCategory, keys.Rename, keys.Delete, keys.Details, keys.ToggleLines, keys.ToggleMarkdown}
	}

	return Model{list: l, keys: keys}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

// Select moves the cursor to the row showing the given goal
func (m *Model) Select(goalID int64) {
	for idx, li := range m.list.Items() {
		if it, ok := li.(Item); ok && it.Kind == KindGoal && it.Goal.ID == goalID {
			m.list.Select(idx)
			return
		}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) KeyMap() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		item, selected := m.Selected()
		switch {
		case key.Matches(msg, m.keys.AddCategory):
			var parent int64
			if selected {
				parent = item.CategoryID()
			}
			return m, func() tea.Msg { return AddCategoryMsg{ParentID: parent} }
		case key.Matches(msg, m.keys.Add):
			var category int64
			if selected {
				category = item.CategoryID()
			}
			return m, func() tea.Msg { return AddGoalMsg{CategoryID: category} }
		case !selected:
		case key.Matches(msg, m.keys.Rename):
			return m, func() tea.Msg { return RenameMsg{Item: item} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteMsg{Item: item} }
		case item.Kind != KindGoal:
		case key.Matches(msg, m.keys.Open):
			return m, func() tea.Msg { return OpenGoalMsg{Goal: item.Goal} }
		case key.Matches(msg, m.keys.Details):
			return m, func() tea.Msg { return EditDetailsMsg{Goal: item.Goal} }
		case key.Matches(msg, m.keys.ToggleLines):
			return m, func() tea.Msg { return ToggleLinesMsg{Goal: item.Goal} }
		case key.Matches(msg, m.keys.ToggleMarkdown):
			return m, func() tea.Msg { return ToggleMarkdownMsg{Goal: item.Goal} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No categories yet.\n  Press 'c' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

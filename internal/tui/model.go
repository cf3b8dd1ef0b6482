package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/tracker"
	"github.com/DEVBOX10/Ididit/internal/tui/components/goallist"
	"github.com/DEVBOX10/Ididit/internal/tui/components/tasklist"
	"github.com/DEVBOX10/Ididit/internal/validation"
)

// tabCount is the number of session states reachable with tab
const tabCount = 3

type NameFormModel struct {
	Name string
}

type SettingsFormModel struct {
	Name                             string
	Size                             string
	Theme                            string
	Sort                             constants.SortMode
	ElapsedToDesiredRatioMin         string
	ShowElapsedToDesiredRatioOverMin bool
	ShowOnlyRepeating                bool
	ShowOnlyAsap                     bool
	AlsoShowCompletedAsap            bool
}

type Model struct {
	tracker       *tracker.Tracker
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	goalList      goallist.Model
	taskList      tasklist.Model
	details       textarea.Model
	form          *huh.Form
	nameForm      *NameFormModel
	settingsForm  *SettingsFormModel
	submit        func() (string, error)
	confirm       func() (string, error)
	confirmPrompt string
	goalID        int64 // goal shown on the Tasks tab
	editingGoalID int64 // goal whose details are in the editor
	status        string
	warning       string // validation summary shown next to the tabs
	statusErr     bool
	quitting      bool
	width         int
	height        int
	now           func() time.Time
}

func NewModel(tr *tracker.Tracker) Model {
	ta := textarea.New()
	ta.Placeholder = "One task per line. Lines starting with \"- \" add details to the task above."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0

	m := Model{
		tracker:  tr,
		state:    constants.StateGoals,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		goalList: goallist.New(nil, 0, 0),
		taskList: tasklist.New(0, 0),
		details:  ta,
		now:      time.Now,
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateGoals:
		gk := m.goalList.KeyMap()
		keys = append(keys, gk.Open, gk.Add, gk.Details)
	case constants.StateTasks:
		keys = append(keys, m.keys.Back)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	case constants.StateEditDetails:
		keys = []key.Binding{m.keys.Save, m.keys.Back}
	case constants.StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateGoals:
		gk := m.goalList.KeyMap()
		actions = []key.Binding{gk.Open, gk.Add, gk.AddCategory, gk.Rename, gk.Delete, gk.Details, gk.ToggleLines, gk.ToggleMarkdown}
	case constants.StateTasks:
		tk := tasklist.DefaultKeyMap()
		actions = []key.Binding{tk.Add, tk.Rename, tk.Delete, tk.Done, m.keys.Back}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh rebuilds both lists from the tracker's tree
func (m *Model) refresh() {
	data := m.tracker.Data()
	if data == nil {
		return
	}
	m.goalList.SetItems(goallist.Rows(data, data.Settings.Sort, m.now()))
	m.updateValidationStatus()

	goal, ok := data.Goal(m.goalID)
	if !ok {
		m.goalID = 0
		m.taskList.SetTasks(nil, m.tracker.IsDone)
		return
	}
	m.taskList.SetTasks(goal.Tasks, m.tracker.IsDone)
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	result := validation.New(m.tracker.Options()).ValidateData(m.tracker.Data(), m.now())
	if result.HasConflicts() {
		m.warning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.warning = ""
	}
}

func (m Model) currentGoal() (*models.Goal, bool) {
	data := m.tracker.Data()
	if data == nil || m.goalID == 0 {
		return nil, false
	}
	return data.Goal(m.goalID)
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) resize() {
	// tabs, status line and help surround the lists
	height := m.height - 7
	if height < 1 {
		height = 1
	}
	width := m.width - 4
	if width < 1 {
		width = 1
	}
	m.goalList.SetSize(width, height)
	m.taskList.SetSize(width, height)
	m.details.SetWidth(width)
	m.details.SetHeight(height - 2)
}

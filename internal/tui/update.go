package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
	"github.com/DEVBOX10/Ididit/internal/tui/components/goallist"
	"github.com/DEVBOX10/Ididit/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
	}

	switch m.state {
	case constants.StateForm:
		return m.updateForm(msg)
	case constants.StateEditDetails:
		return m.updateDetails(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirm(msg)
	}

	if cmd, ok := m.handleGoalMessages(msg); ok {
		return m, cmd
	}
	if cmd, ok := m.handleTaskMessages(msg); ok {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == constants.StateTasks && key.Matches(msg, m.keys.Back):
			m.goalList.Select(m.goalID)
			m.state = constants.StateGoals
			return m, nil
		case m.state == constants.StateSettings && key.Matches(msg, m.keys.Edit):
			return m, m.openSettingsForm()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateGoals:
		m.goalList, cmd = m.goalList.Update(msg)
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

func (m Model) filtering() bool {
	switch m.state {
	case constants.StateGoals:
		return m.goalList.Filtering()
	case constants.StateTasks:
		return m.taskList.Filtering()
	}
	return false
}

func (m *Model) handleGoalMessages(msg tea.Msg) (tea.Cmd, bool) {
	tr := m.tracker

	switch msg := msg.(type) {
	case goallist.OpenGoalMsg:
		m.goalID = msg.Goal.ID
		m.refresh()
		m.state = constants.StateTasks
		return nil, true

	case goallist.AddCategoryMsg:
		return m.openNameForm("New category", "", func(name string) (string, error) {
			c, err := tr.AddCategory(msg.ParentID, name)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added category %q", c.Name), nil
		}), true

	case goallist.AddGoalMsg:
		return m.openNameForm("New goal", "", func(name string) (string, error) {
			g, err := tr.AddGoal(msg.CategoryID, name)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added goal %q", g.Name), nil
		}), true

	case goallist.RenameMsg:
		item := msg.Item
		return m.openNameForm("Rename", item.Name(), func(name string) (string, error) {
			var err error
			if item.Kind == goallist.KindGoal {
				err = tr.RenameGoal(item.ID(), name)
			} else {
				err = tr.RenameCategory(item.ID(), name)
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Renamed to %q", name), nil
		}), true

	case goallist.DeleteMsg:
		item := msg.Item
		if item.Kind == goallist.KindGoal {
			m.openConfirm(fmt.Sprintf("Delete goal %q and its %d tasks?", item.Name(), len(item.Goal.Tasks)), func() (string, error) {
				if err := tr.DeleteGoal(item.ID()); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted goal %q", item.Name()), nil
			})
		} else {
			m.openConfirm(fmt.Sprintf("Delete category %q with everything in it?", item.Name()), func() (string, error) {
				if err := tr.DeleteCategory(item.ID()); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted category %q", item.Name()), nil
			})
		}
		return nil, true

	case goallist.EditDetailsMsg:
		m.editingGoalID = msg.Goal.ID
		m.details.SetValue(msg.Goal.Details)
		m.previousState = m.state
		m.state = constants.StateEditDetails
		return m.details.Focus(), true

	case goallist.ToggleLinesMsg:
		on, ops, err := tr.ToggleCreateTaskFromEachLine(msg.Goal.ID)
		if err != nil {
			m.fail("toggle lines", err)
			return nil, true
		}
		m.setStatus(fmt.Sprintf("Task per line %s for %q%s", onOff(on), msg.Goal.Name, describeOps(ops)))
		m.refresh()
		return nil, true

	case goallist.ToggleMarkdownMsg:
		on, err := tr.ToggleDisplayAsMarkdown(msg.Goal.ID)
		if err != nil {
			m.fail("toggle markdown", err)
			return nil, true
		}
		m.setStatus(fmt.Sprintf("Markdown %s for %q", onOff(on), msg.Goal.Name))
		return nil, true
	}
	return nil, false
}

func (m *Model) handleTaskMessages(msg tea.Msg) (tea.Cmd, bool) {
	tr := m.tracker

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		goal, ok := m.currentGoal()
		if !ok {
			return nil, true
		}
		return m.openNameForm("New task for "+goal.Name, "", func(name string) (string, error) {
			task, err := tr.AddTask(goal.ID, name)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Added task %q", task.Name), nil
		}), true

	case tasklist.RenameTaskMsg:
		task := msg.Task
		return m.openNameForm("Rename task", task.Name, func(name string) (string, error) {
			if err := tr.RenameTask(task.ID, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Renamed to %q", name), nil
		}), true

	case tasklist.DeleteTaskMsg:
		task := msg.Task
		m.openConfirm(fmt.Sprintf("Delete task %q and its %d completions?", task.Name, len(task.Times)), func() (string, error) {
			if err := tr.DeleteTask(task.ID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted task %q", task.Name), nil
		})
		return nil, true

	case tasklist.ToggleDoneMsg:
		if tr.IsDone(msg.Task) {
			if err := tr.UndoTaskDone(msg.Task.ID); err != nil {
				m.fail("undo task", err)
				return nil, true
			}
			m.setStatus(fmt.Sprintf("Undid %q", msg.Task.Name))
		} else {
			tt, err := tr.MarkTaskDone(msg.Task.ID, time.Time{})
			if err != nil {
				m.fail("mark task done", err)
				return nil, true
			}
			m.setStatus(fmt.Sprintf("Did %q at %s", msg.Task.Name, tt.Time.Local().Format(constants.DisplayTimeFormat)))
		}
		m.refresh()
		return nil, true
	}
	return nil, false
}

func (m *Model) openNameForm(title, name string, submit func(string) (string, error)) tea.Cmd {
	fm := &NameFormModel{Name: name}
	m.nameForm = fm
	m.submit = func() (string, error) { return submit(fm.Name) }
	m.form = NewNameForm(title, fm)
	m.previousState = m.state
	m.state = constants.StateForm
	return m.form.Init()
}

func (m *Model) openSettingsForm() tea.Cmd {
	fm := settingsFormFrom(m.tracker.Settings())
	m.settingsForm = fm
	m.submit = func() (string, error) {
		settings, err := fm.Settings(m.tracker.Settings())
		if err != nil {
			return "", err
		}
		if err := m.tracker.SaveSettings(settings); err != nil {
			return "", err
		}
		return "Settings saved", nil
	}
	m.form = NewSettingsForm(fm)
	m.previousState = m.state
	m.state = constants.StateForm
	return m.form.Init()
}

func (m *Model) openConfirm(prompt string, action func() (string, error)) {
	m.confirmPrompt = prompt
	m.confirm = action
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

// submitForm runs the pending action with the values the form collected
func (m *Model) submitForm() {
	if m.submit != nil {
		if status, err := m.submit(); err != nil {
			m.fail("save", err)
		} else {
			m.setStatus(status)
		}
	}
	m.refresh()
	m.closeForm()
}

func (m *Model) closeForm() {
	m.form = nil
	m.nameForm = nil
	m.settingsForm = nil
	m.submit = nil
	m.state = m.previousState
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Confirm):
		if m.confirm != nil {
			if status, err := m.confirm(); err != nil {
				m.fail("delete", err)
			} else {
				m.setStatus(status)
			}
		}
		m.refresh()
	case key.Matches(km, m.keys.Cancel):
	default:
		return m, nil
	}
	m.confirm = nil
	m.confirmPrompt = ""
	m.state = m.previousState
	return m, nil
}

func (m Model) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Save):
			m.saveDetails()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.details.Blur()
			m.state = m.previousState
			m.setStatus("Details discarded")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

// saveDetails stores the editor text, reconciling the goal's tasks when it
// creates a task from each line.
func (m *Model) saveDetails() {
	ops, err := m.tracker.SetGoalDetails(m.editingGoalID, m.details.Value())
	m.details.Blur()
	m.state = m.previousState
	if err != nil {
		m.fail("save details", err)
		return
	}
	m.setStatus("Details saved" + describeOps(ops))
	m.refresh()
}

func (m *Model) fail(action string, err error) {
	logger.Error("TUI action failed", "action", action, "error", err)
	m.setError(err)
}

func describeOps(ops []reconcile.Op) string {
	if !reconcile.Changed(ops) {
		return ""
	}
	counts := reconcile.Counts(ops)
	return fmt.Sprintf(": %d added, %d updated, %d removed",
		counts[reconcile.OpInsert], counts[reconcile.OpUpdate], counts[reconcile.OpDelete])
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateGoals:
		content = docStyle.Render(m.goalList.View())
	case constants.StateTasks:
		content = m.viewTasks()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateEditDetails:
		content = m.viewDetails()
	case constants.StateForm:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}

	title := m.tracker.Settings().Name
	if title == "" {
		title = constants.DisplayName
	}
	tabs := []string{titleStyle.Render(title)}
	for i, name := range []string{"Goals", "Tasks", "Settings"} {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	if m.warning != "" {
		tabs = append(tabs, warningStyle.Render(m.warning))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() string {
	goal, ok := m.currentGoal()
	if !ok {
		return docStyle.Render("No goal selected.\nPick one on the Goals tab and press enter.")
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(goal.Name),
		m.taskList.View(),
	))
}

func (m Model) viewDetails() string {
	name := ""
	hint := "ctrl+s to save, esc to discard"
	if goal, ok := m.tracker.Data().Goal(m.editingGoalID); ok {
		name = goal.Name
		if goal.CreateTaskFromEachLine {
			hint = "each line is a task; " + hint
		}
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Details for "+name),
		m.details.View(),
		labelStyle.Render(hint),
	))
}

func (m Model) viewSettings() string {
	var b strings.Builder
	values := models.SettingsToMap(m.tracker.Settings())
	for _, key := range models.SettingKeys {
		b.WriteString(labelStyle.Render(key))
		b.WriteString(values[key])
		b.WriteString("\n")
	}

	opts := m.tracker.Options()
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("skip blank lines"))
	b.WriteString(fmt.Sprintf("%v\n", opts.SkipBlank))
	b.WriteString(labelStyle.Render("group \"- \" detail lines"))
	b.WriteString(fmt.Sprintf("%v\n", opts.GroupDetails))
	b.WriteString("\nPress 'e' to edit. Line options come from the config file.")
	return docStyle.Render(b.String())
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render("  " + m.status)
	}
	return statusStyle.Render("  " + m.status)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmPrompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

package tasklist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DEVBOX10/Ididit/internal/models"
)

func TestSetTasksMarksDone(t *testing.T) {
	done := &models.Task{ID: 1, Name: "Run", Times: []models.TaskTime{{ID: 1, TaskID: 1, Time: time.Now()}}}
	open := &models.Task{ID: 2, Name: "Swim"}

	m := New(80, 40)
	m.SetTasks([]*models.Task{done, open}, func(t *models.Task) bool { return len(t.Times) > 0 })

	item, ok := m.Selected()
	if !ok {
		t.Fatal("expected a selected task")
	}
	if item.Title() != "[x] Run" {
		t.Errorf("Title() = %q", item.Title())
	}
	if (Item{Task: open}).Title() != "[ ] Swim" {
		t.Errorf("unexpected title for open task")
	}
	if got := (Item{Task: open}).Description(); got != "done 0 times" {
		t.Errorf("Description() = %q", got)
	}
}

func TestKeysEmitMessages(t *testing.T) {
	task := &models.Task{ID: 7, Name: "Run"}
	m := New(80, 40)
	m.SetTasks([]*models.Task{task}, func(*models.Task) bool { return false })

	tests := []struct {
		msg  tea.KeyMsg
		want tea.Msg
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, AddTaskMsg{}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, RenameTaskMsg{Task: task}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, DeleteTaskMsg{Task: task}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, ToggleDoneMsg{Task: task}},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, ToggleDoneMsg{Task: task}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(tt.msg)
		if cmd == nil {
			t.Errorf("key %q produced no command", tt.msg.String())
			continue
		}
		if got := cmd(); got != tt.want {
			t.Errorf("key %q = %#v, want %#v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestEmptyView(t *testing.T) {
	m := New(80, 40)
	if got := m.View(); got == "" {
		t.Error("expected a hint for an empty list")
	}
}

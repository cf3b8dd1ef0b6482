package models

import (
	"strings"
	"time"
)

// TaskTime records one completion of a task
type TaskTime struct {
	ID     int64     `json:"id" yaml:"id"`
	TaskID int64     `json:"task_id" yaml:"task_id"`
	Time   time.Time `json:"time" yaml:"time"`
}

// Task is an actionable item belonging to a Goal
type Task struct {
	ID          int64      `json:"id" yaml:"id"`
	GoalID      int64      `json:"goal_id" yaml:"goal_id"`
	PreviousID  int64      `json:"previous_id,omitempty" yaml:"previous_id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	DetailsText string     `json:"details_text,omitempty" yaml:"details_text,omitempty"`
	Times       []TaskTime `json:"times,omitempty" yaml:"times,omitempty"`
}

func (t *Task) GetID() int64           { return t.ID }
func (t *Task) GetPreviousID() int64   { return t.PreviousID }
func (t *Task) SetPreviousID(id int64) { t.PreviousID = id }

// AddDetail appends line to DetailsText unless it is already there.
// It reports whether the text changed.
func (t *Task) AddDetail(line string) bool {
	for _, existing := range t.DetailLines() {
		if existing == line {
			return false
		}
	}
	if t.DetailsText == "" {
		t.DetailsText = line
	} else {
		t.DetailsText += "\n" + line
	}
	return true
}

// DetailLines splits DetailsText into its lines
func (t *Task) DetailLines() []string {
	if t.DetailsText == "" {
		return nil
	}
	return strings.Split(t.DetailsText, "\n")
}

// AddTime records a completion at the given time
func (t *Task) AddTime(tt TaskTime) {
	tt.TaskID = t.ID
	t.Times = append(t.Times, tt)
}

// RemoveTime drops the completion with the given id
func (t *Task) RemoveTime(id int64) bool {
	for i, tt := range t.Times {
		if tt.ID == id {
			t.Times = append(t.Times[:i], t.Times[i+1:]...)
			return true
		}
	}
	return false
}

// LastTime returns the most recent completion
func (t *Task) LastTime() (TaskTime, bool) {
	if len(t.Times) == 0 {
		return TaskTime{}, false
	}
	last := t.Times[0]
	for _, tt := range t.Times[1:] {
		if tt.Time.After(last.Time) {
			last = tt
		}
	}
	return last, true
}

// DoneSince reports whether the task was completed at or after since
func (t *Task) DoneSince(since time.Time) bool {
	last, ok := t.LastTime()
	return ok && !last.Time.Before(since)
}

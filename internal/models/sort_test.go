package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

func goalDoneAt(id int64, name string, done ...time.Time) *Goal {
	task := &Task{ID: id * 10, GoalID: id, Name: "t"}
	for i, at := range done {
		task.AddTime(TaskTime{ID: id*100 + int64(i), TaskID: task.ID, Time: at})
	}
	return &Goal{ID: id, Name: name, Tasks: []*Task{task}}
}

func names(goals []*Goal) []string {
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = g.Name
	}
	return out
}

func TestSortGoals(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	goals := []*Goal{
		goalDoneAt(1, "walk", now.Add(-time.Hour)),
		goalDoneAt(2, "Bake", now.Add(-48*time.Hour), now.Add(-2*time.Hour)),
		goalDoneAt(3, "call mum"),
		goalDoneAt(4, "Art", now.Add(-72*time.Hour)),
	}

	tests := []struct {
		mode constants.SortMode
		want []string
	}{
		{constants.SortNone, []string{"walk", "Bake", "call mum", "Art"}},
		{constants.SortName, []string{"Art", "Bake", "call mum", "walk"}},
		{constants.SortElapsedTime, []string{"call mum", "Art", "Bake", "walk"}},
		{constants.SortElapsedToDesiredRatio, []string{"call mum", "Art", "Bake", "walk"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, names(SortGoals(goals, tt.mode, now)))
		})
	}

	// The input slice keeps its order
	assert.Equal(t, []string{"walk", "Bake", "call mum", "Art"}, names(goals))
}

func TestGoalLastDone(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	_, ok := goalDoneAt(1, "never").LastDone()
	assert.False(t, ok)

	last, ok := goalDoneAt(2, "twice", now.Add(-time.Hour), now).LastDone()
	assert.True(t, ok)
	assert.Equal(t, now, last)
}

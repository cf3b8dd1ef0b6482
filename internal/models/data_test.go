package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleBuildsOrderedTree(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	categories := []Category{
		{ID: 1, Name: "root"},
		{ID: 3, ParentID: 1, PreviousID: 2, Name: "second child"},
		{ID: 2, ParentID: 1, Name: "first child"},
	}
	goals := []Goal{
		{ID: 5, CategoryID: 1, PreviousID: 4, Name: "g2"},
		{ID: 4, CategoryID: 1, Name: "g1"},
	}
	tasks := []Task{
		{ID: 9, GoalID: 4, PreviousID: 8, Name: "t2"},
		{ID: 8, GoalID: 4, Name: "t1"},
	}
	times := []TaskTime{
		{ID: 2, TaskID: 8, Time: now.Add(time.Hour)},
		{ID: 1, TaskID: 8, Time: now},
	}

	data, err := Assemble(categories, goals, tasks, times, DefaultSettings())
	require.NoError(t, err)

	require.Len(t, data.Categories, 1)
	root := data.Categories[0]
	require.Len(t, root.Categories, 2)
	assert.Equal(t, "first child", root.Categories[0].Name)
	assert.Equal(t, "second child", root.Categories[1].Name)

	require.Len(t, root.Goals, 2)
	assert.Equal(t, "g1", root.Goals[0].Name)
	assert.Equal(t, []string{"t1", "t2"}, root.Goals[0].TaskNames())

	task, ok := data.Task(8)
	require.True(t, ok)
	require.Len(t, task.Times, 2)
	assert.True(t, task.Times[0].Time.Equal(now))
	assert.True(t, task.DoneSince(now.Add(30*time.Minute)))
	assert.False(t, task.DoneSince(now.Add(2*time.Hour)))
}

func TestAssembleRejectsOrphans(t *testing.T) {
	_, err := Assemble(nil, []Goal{{ID: 1, CategoryID: 7}}, nil, nil, DefaultSettings())
	assert.ErrorIs(t, err, ErrIdentifierNotFound)
}

func TestFlattenRoundTrip(t *testing.T) {
	data := &Data{}
	root, err := data.CreateCategory(1, "root")
	require.NoError(t, err)
	goal, err := root.CreateGoal(1, "goal")
	require.NoError(t, err)
	task, err := goal.CreateTask(1, "task")
	require.NoError(t, err)
	task.AddTime(TaskTime{ID: 1, Time: time.Now().UTC()})

	categories, goals, tasks, times := data.Flatten()
	rebuilt, err := Assemble(categories, goals, tasks, times, data.Settings)
	require.NoError(t, err)

	found, ok := rebuilt.Task(1)
	require.True(t, ok)
	assert.Equal(t, "task", found.Name)
	assert.Len(t, found.Times, 1)
}

func TestRemoveRootCategory(t *testing.T) {
	data := &Data{}
	first, err := data.CreateCategory(1, "first")
	require.NoError(t, err)
	second, err := data.CreateCategory(2, "second")
	require.NoError(t, err)
	child, err := second.CreateCategory(3, "child")
	require.NoError(t, err)

	successor, err := data.RemoveCategory(first)
	require.NoError(t, err)
	assert.Equal(t, second, successor)
	assert.Equal(t, int64(0), second.PreviousID)

	successor, err = data.RemoveCategory(child)
	require.NoError(t, err)
	assert.Nil(t, successor)
	assert.Empty(t, second.Categories)
}

func TestTaskAddDetail(t *testing.T) {
	task := &Task{}
	assert.True(t, task.AddDetail("- one"))
	assert.True(t, task.AddDetail("- two"))
	assert.False(t, task.AddDetail("- one"))
	assert.Equal(t, "- one\n- two", task.DetailsText)
}

func TestSettingsMapRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.ShowOnlyAsap = true
	s.ElapsedToDesiredRatioMin = 75

	back, err := MapToSettings(SettingsToMap(s))
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestSettingsSetValidates(t *testing.T) {
	s := DefaultSettings()
	assert.Error(t, s.Set(SettingSize, "huge"))
	assert.Error(t, s.Set(SettingSort, "random"))
	assert.Error(t, s.Set(SettingShowOnlyAsap, "maybe"))
	assert.Error(t, s.Set("unknown", "x"))
	assert.NoError(t, s.Set(SettingSort, "name"))
	assert.Equal(t, "name", string(s.Sort))
}

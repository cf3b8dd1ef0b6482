package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
	"github.com/DEVBOX10/Ididit/internal/storage/sqlstore"
)

func setupTracker(t *testing.T) (*Tracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ididit.db")
	store := sqlstore.NewSQLite(path)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	tr := New(store, reconcile.DefaultLineOptions())
	require.NoError(t, tr.Load())
	return tr, path
}

// reload opens the same database in a fresh tracker
func reload(t *testing.T, path string) *Tracker {
	t.Helper()
	store := sqlstore.NewSQLite(path)
	require.NoError(t, store.Load())
	t.Cleanup(func() { store.Close() })

	tr := New(store, reconcile.DefaultLineOptions())
	require.NoError(t, tr.Load())
	return tr
}

func TestLoadCreatesRootOnce(t *testing.T) {
	tr, path := setupTracker(t)

	root, err := tr.Root()
	require.NoError(t, err)
	assert.Equal(t, constants.RootCategoryName, root.Name)
	assert.Equal(t, int64(1), root.ID)

	again := reload(t, path)
	require.Len(t, again.Data().Categories, 1)
	assert.Equal(t, root.ID, again.Data().Categories[0].ID)
}

func TestCategoryLifecycle(t *testing.T) {
	tr, path := setupTracker(t)
	root, _ := tr.Root()

	a, err := tr.AddCategory(root.ID, "Health")
	require.NoError(t, err)
	b, err := tr.AddCategory(root.ID, "Work")
	require.NoError(t, err)
	c, err := tr.AddCategory(root.ID, "Home")
	require.NoError(t, err)
	_, err = tr.AddGoal(b.ID, "Ship release")
	require.NoError(t, err)

	require.NoError(t, tr.RenameCategory(a.ID, "Fitness"))
	require.NoError(t, tr.DeleteCategory(b.ID))
	assert.Equal(t, a.ID, c.PreviousID)

	again := reload(t, path)
	reloadedRoot, _ := again.Root()
	require.Len(t, reloadedRoot.Categories, 2)
	assert.Equal(t, "Fitness", reloadedRoot.Categories[0].Name)
	assert.Equal(t, "Home", reloadedRoot.Categories[1].Name)
	assert.Empty(t, again.Data().Goals())
}

func TestZeroIDMeansRoot(t *testing.T) {
	tr, _ := setupTracker(t)
	root, _ := tr.Root()

	sub, err := tr.AddCategory(0, "Errands")
	require.NoError(t, err)
	assert.Equal(t, root.ID, sub.ParentID)

	goal, err := tr.AddGoal(0, "Post office")
	require.NoError(t, err)
	assert.Equal(t, root.ID, goal.CategoryID)
	require.Len(t, tr.Data().Categories, 1)
}

func TestSetGoalDetailsReconcilesAndPersists(t *testing.T) {
	tr, path := setupTracker(t)
	root, _ := tr.Root()

	goal, err := tr.AddGoal(root.ID, "Groceries")
	require.NoError(t, err)
	_, _, err = tr.ToggleCreateTaskFromEachLine(goal.ID)
	require.NoError(t, err)

	ops, err := tr.SetGoalDetails(goal.ID, "milk\neggs\n- free range\nbread")
	require.NoError(t, err)
	assert.Equal(t, 3, reconcile.Counts(ops)[reconcile.OpInsert])
	assert.Equal(t, []string{"milk", "eggs", "bread"}, goal.TaskNames())
	assert.Equal(t, "- free range", goal.Tasks[1].DetailsText)

	_, err = tr.SetGoalDetails(goal.ID, "milk\nbutter\nbread")
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "butter", "bread"}, goal.TaskNames())
	assert.Empty(t, goal.Tasks[1].DetailsText)

	again := reload(t, path)
	reloaded, ok := again.Data().Goal(goal.ID)
	require.True(t, ok)
	assert.Equal(t, "milk\nbutter\nbread", reloaded.Details)
	assert.Equal(t, goal.TaskNames(), reloaded.TaskNames())
	require.NoError(t, models.VerifyOrder(reloaded.Tasks))
}

func TestSetGoalDetailsWithoutLineTasks(t *testing.T) {
	tr, _ := setupTracker(t)
	root, _ := tr.Root()
	goal, err := tr.AddGoal(root.ID, "Journal")
	require.NoError(t, err)

	ops, err := tr.SetGoalDetails(goal.ID, "just\nnotes")
	require.NoError(t, err)
	assert.Nil(t, ops)
	assert.Empty(t, goal.Tasks)
}

func TestToggleOnReconcilesExistingDetails(t *testing.T) {
	tr, _ := setupTracker(t)
	root, _ := tr.Root()
	goal, err := tr.AddGoal(root.ID, "Reading")
	require.NoError(t, err)
	_, err = tr.SetGoalDetails(goal.ID, "Dune\nEmma")
	require.NoError(t, err)

	on, ops, err := tr.ToggleCreateTaskFromEachLine(goal.ID)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, ops, 2)
	assert.Equal(t, []string{"Dune", "Emma"}, goal.TaskNames())

	off, ops, err := tr.ToggleCreateTaskFromEachLine(goal.ID)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Nil(t, ops)
	assert.Len(t, goal.Tasks, 2)
}

func TestTaskLifecycle(t *testing.T) {
	tr, path := setupTracker(t)
	root, _ := tr.Root()
	goal, err := tr.AddGoal(root.ID, "Chores")
	require.NoError(t, err)

	first, err := tr.AddTask(goal.ID, "dishes")
	require.NoError(t, err)
	second, err := tr.AddTask(goal.ID, "laundry")
	require.NoError(t, err)
	third, err := tr.AddTask(goal.ID, "vacuum")
	require.NoError(t, err)

	require.NoError(t, tr.RenameTask(third.ID, "hoover"))
	require.NoError(t, tr.SetTaskDetails(first.ID, "- use gloves"))
	require.NoError(t, tr.DeleteTask(second.ID))

	again := reload(t, path)
	reloaded, _ := again.Data().Goal(goal.ID)
	require.Equal(t, []string{"dishes", "hoover"}, reloaded.TaskNames())
	assert.Equal(t, "- use gloves", reloaded.Tasks[0].DetailsText)
	assert.Equal(t, first.ID, reloaded.Tasks[1].PreviousID)
}

func TestMarkDoneAndUndo(t *testing.T) {
	tr, path := setupTracker(t)
	root, _ := tr.Root()
	goal, _ := tr.AddGoal(root.ID, "Habits")
	task, err := tr.AddTask(goal.ID, "stretch")
	require.NoError(t, err)

	assert.False(t, tr.IsDone(task))
	require.ErrorIs(t, tr.UndoTaskDone(task.ID), ErrNothingToUndo)

	earlier := tr.SessionStart().Add(-48 * time.Hour)
	_, err = tr.MarkTaskDone(task.ID, earlier)
	require.NoError(t, err)
	assert.False(t, tr.IsDone(task), "completion before the session does not count")

	tt, err := tr.MarkTaskDone(task.ID, time.Time{})
	require.NoError(t, err)
	assert.True(t, tr.IsDone(task))
	assert.Len(t, task.Times, 2)

	require.NoError(t, tr.UndoTaskDone(task.ID))
	assert.Len(t, task.Times, 1)
	assert.False(t, tr.IsDone(task))

	again := reload(t, path)
	reloaded, ok := again.Data().Task(task.ID)
	require.True(t, ok)
	require.Len(t, reloaded.Times, 1)
	assert.NotEqual(t, tt.ID, reloaded.Times[0].ID)
}

func TestValidation(t *testing.T) {
	tr, _ := setupTracker(t)
	root, _ := tr.Root()

	_, err := tr.AddGoal(root.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = tr.AddGoal(999, "orphan")
	assert.ErrorIs(t, err, models.ErrIdentifierNotFound)

	assert.ErrorIs(t, tr.DeleteTask(999), models.ErrIdentifierNotFound)
	_, err = tr.SetGoalDetails(999, "x")
	assert.ErrorIs(t, err, models.ErrIdentifierNotFound)

	assert.ErrorIs(t, tr.DeleteCategory(root.ID), ErrRootCategory)

	unloaded := New(nil, reconcile.DefaultLineOptions())
	_, err = unloaded.AddCategory(0, "x")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestBlankRenameLeavesNameUntouched(t *testing.T) {
	tr, path := setupTracker(t)
	root, _ := tr.Root()
	category, err := tr.AddCategory(root.ID, "Health")
	require.NoError(t, err)
	goal, err := tr.AddGoal(category.ID, "Run")
	require.NoError(t, err)
	task, err := tr.AddTask(goal.ID, "warm up")
	require.NoError(t, err)

	assert.ErrorIs(t, tr.RenameCategory(category.ID, "   "), ErrEmptyName)
	assert.ErrorIs(t, tr.RenameGoal(goal.ID, "   "), ErrEmptyName)
	assert.ErrorIs(t, tr.RenameTask(task.ID, "\t"), ErrEmptyName)

	assert.Equal(t, "Health", category.Name)
	assert.Equal(t, "Run", goal.Name)
	assert.Equal(t, "warm up", task.Name)

	// later writes of the same entities must not carry a blank name
	_, err = tr.SetGoalDetails(goal.ID, "x")
	require.NoError(t, err)
	require.NoError(t, tr.SetTaskDetails(task.ID, "- slowly"))

	again := reload(t, path)
	reloadedGoal, ok := again.Data().Goal(goal.ID)
	require.True(t, ok)
	assert.Equal(t, "Run", reloadedGoal.Name)
	assert.Equal(t, "x", reloadedGoal.Details)
	reloadedTask, ok := again.Data().Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, "warm up", reloadedTask.Name)
	reloadedCategory, ok := again.Data().Category(category.ID)
	require.True(t, ok)
	assert.Equal(t, "Health", reloadedCategory.Name)
}

func TestSaveSettings(t *testing.T) {
	tr, path := setupTracker(t)

	settings := tr.Settings()
	require.NoError(t, settings.Set(models.SettingSort, string(constants.SortName)))
	require.NoError(t, tr.SaveSettings(settings))

	again := reload(t, path)
	assert.Equal(t, constants.SortName, again.Settings().Sort)
}

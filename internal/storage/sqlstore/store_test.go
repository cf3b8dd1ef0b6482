package sqlstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewSQLite(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	cleanup := func() {
		store.Close()
	}

	return store, cleanup
}

func nextID(t *testing.T, store *Store, kind models.Kind) int64 {
	t.Helper()
	id, err := store.NextID(kind)
	if err != nil {
		t.Fatalf("NextID(%s) failed: %v", kind, err)
	}
	return id
}

// seed stores root -> goal -> task -> time and returns their ids
func seed(t *testing.T, store *Store) (categoryID, goalID, taskID, timeID int64) {
	t.Helper()
	categoryID = nextID(t, store, models.KindCategory)
	goalID = nextID(t, store, models.KindGoal)
	taskID = nextID(t, store, models.KindTask)
	timeID = nextID(t, store, models.KindTime)

	if err := store.AddCategory(models.Category{ID: categoryID, Name: constants.RootCategoryName}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if err := store.AddGoal(models.Goal{ID: goalID, CategoryID: categoryID, Name: "Read", CreateTaskFromEachLine: true}); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if err := store.AddTask(models.Task{ID: taskID, GoalID: goalID, Name: "chapter 1"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := store.AddTime(models.TaskTime{ID: timeID, TaskID: taskID, Time: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("AddTime failed: %v", err)
	}
	return categoryID, goalID, taskID, timeID
}

func TestInitWritesDefaultSettings(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", settings)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewSQLite(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestNextIDStartsAtOneAndNeverReuses(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	first := nextID(t, store, models.KindTask)
	if first != 1 {
		t.Fatalf("expected first id 1, got %d", first)
	}

	_, goalID, taskID, _ := seed(t, store)
	if err := store.DeleteTask(taskID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	next := nextID(t, store, models.KindTask)
	if next <= taskID {
		t.Errorf("id %d reused after delete of %d", next, taskID)
	}

	// kinds keep separate sequences
	if got := nextID(t, store, models.KindGoal); got != goalID+1 {
		t.Errorf("expected goal id %d, got %d", goalID+1, got)
	}

	if _, err := store.NextID(models.Kind("bogus")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadDataRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	categoryID, goalID, taskID, timeID := seed(t, store)

	second := nextID(t, store, models.KindTask)
	if err := store.AddTask(models.Task{ID: second, GoalID: goalID, PreviousID: taskID, Name: "chapter 2", DetailsText: "- notes"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	data, err := store.LoadData()
	if err != nil {
		t.Fatalf("LoadData failed: %v", err)
	}

	if len(data.Categories) != 1 || data.Categories[0].ID != categoryID {
		t.Fatalf("unexpected categories: %+v", data.Categories)
	}
	goal, ok := data.Goal(goalID)
	if !ok {
		t.Fatalf("goal %d not loaded", goalID)
	}
	if !goal.CreateTaskFromEachLine {
		t.Error("CreateTaskFromEachLine flag lost")
	}
	names := goal.TaskNames()
	if len(names) != 2 || names[0] != "chapter 1" || names[1] != "chapter 2" {
		t.Errorf("unexpected task order: %v", names)
	}
	if goal.Tasks[1].DetailsText != "- notes" {
		t.Errorf("details text lost: %q", goal.Tasks[1].DetailsText)
	}

	times := goal.Tasks[0].Times
	if len(times) != 1 || times[0].ID != timeID {
		t.Fatalf("unexpected times: %+v", times)
	}
	if !times[0].Time.Equal(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("time round trip mismatch: %v", times[0].Time)
	}
}

func TestUpdateRelinksOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, goalID, taskID, _ := seed(t, store)
	front := nextID(t, store, models.KindTask)

	// insert in front: successor first, then the new task
	if err := store.UpdateTask(models.Task{ID: taskID, GoalID: goalID, PreviousID: front, Name: "chapter 1"}); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if err := store.AddTask(models.Task{ID: front, GoalID: goalID, Name: "preface"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	data, err := store.LoadData()
	if err != nil {
		t.Fatalf("LoadData failed: %v", err)
	}
	goal, _ := data.Goal(goalID)
	names := goal.TaskNames()
	if len(names) != 2 || names[0] != "preface" || names[1] != "chapter 1" {
		t.Errorf("unexpected order after relink: %v", names)
	}
}

func TestAddDuplicateFails(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, goalID, taskID, _ := seed(t, store)
	if err := store.AddTask(models.Task{ID: taskID, GoalID: goalID, Name: "again"}); err == nil {
		t.Error("expected duplicate AddTask to fail")
	}
}

func TestDeleteGoalCascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, goalID, _, _ := seed(t, store)
	if err := store.DeleteGoal(goalID); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}

	for _, table := range []string{"goals", "tasks", "task_times"} {
		var count int
		if err := store.GetDB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected %s to be empty, found %d rows", table, count)
		}
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	rootID, _, _, _ := seed(t, store)

	childID := nextID(t, store, models.KindCategory)
	if err := store.AddCategory(models.Category{ID: childID, ParentID: rootID, Name: "Books"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	childGoal := nextID(t, store, models.KindGoal)
	if err := store.AddGoal(models.Goal{ID: childGoal, CategoryID: childID, Name: "Novels"}); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	otherID := nextID(t, store, models.KindCategory)
	if err := store.AddCategory(models.Category{ID: otherID, PreviousID: rootID, Name: "Other"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}

	if err := store.DeleteCategory(rootID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	// the surviving sibling is relinked by the caller
	if err := store.UpdateCategory(models.Category{ID: otherID, Name: "Other"}); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}

	data, err := store.LoadData()
	if err != nil {
		t.Fatalf("LoadData failed: %v", err)
	}
	if len(data.Categories) != 1 || data.Categories[0].ID != otherID {
		t.Fatalf("unexpected categories after delete: %+v", data.Categories)
	}
	if len(data.Goals()) != 0 {
		t.Errorf("expected goals to be deleted, got %d", len(data.Goals()))
	}
}

func TestDeleteUnknownReturnsNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	checks := map[string]error{
		"category": store.DeleteCategory(42),
		"goal":     store.DeleteGoal(42),
		"task":     store.DeleteTask(42),
		"time":     store.DeleteTime(42),
	}
	for name, err := range checks {
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestSaveSettings(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	settings := models.DefaultSettings()
	settings.Name = "work"
	settings.Sort = constants.SortName
	settings.ShowOnlyRepeating = true

	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != settings {
		t.Errorf("expected %+v, got %+v", settings, got)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLite(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	seed(t, store)
	store.Close()

	reopened := NewSQLite(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	data, err := reopened.LoadData()
	if err != nil {
		t.Fatalf("LoadData failed: %v", err)
	}
	if len(data.Goals()) != 1 {
		t.Errorf("expected 1 goal after reopen, got %d", len(data.Goals()))
	}

	current, latest, err := reopened.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest {
		t.Errorf("schema at %d, latest %d", current, latest)
	}
}

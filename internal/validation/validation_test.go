package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
)

var now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func tree(goals ...*models.Goal) *models.Data {
	root := &models.Category{ID: 1, Name: "ididit!", Goals: goals}
	return &models.Data{Categories: []*models.Category{root}}
}

func countType(result ValidationResult, t ConflictType) int {
	return len(result.OfType(t))
}

func TestValidateData_Clean(t *testing.T) {
	validator := New(reconcile.DefaultLineOptions())

	goal := &models.Goal{ID: 1, CategoryID: 1, Name: "Jogging", Details: "Run\nStretch", CreateTaskFromEachLine: true, Tasks: []*models.Task{
		{ID: 1, GoalID: 1, Name: "Run", Times: []models.TaskTime{{ID: 1, TaskID: 1, Time: now.Add(-time.Hour)}}},
		{ID: 2, GoalID: 1, PreviousID: 1, Name: "Stretch"},
	}}

	result := validator.ValidateData(tree(goal), now)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateData_MultipleRoots(t *testing.T) {
	validator := New(reconcile.DefaultLineOptions())
	data := &models.Data{Categories: []*models.Category{
		{ID: 1, Name: "ididit!"},
		{ID: 2, PreviousID: 1, Name: "Stray"},
	}}

	result := validator.ValidateData(data, now)
	if countType(result, ConflictMultipleRoots) != 1 {
		t.Fatalf("Expected a multiple roots conflict, got: %s", result.FormatReport())
	}
	if len(result.Errors()) != 1 || len(result.Warnings()) != 0 {
		t.Errorf("multiple roots should be an error")
	}
}

func TestValidateData_InvalidAndFutureTimes(t *testing.T) {
	validator := New(reconcile.DefaultLineOptions())
	goal := &models.Goal{ID: 1, CategoryID: 1, Name: "Reading", Tasks: []*models.Task{
		{ID: 1, GoalID: 1, Name: "Chapter", Times: []models.TaskTime{
			{ID: 1, TaskID: 1},
			{ID: 2, TaskID: 1, Time: now.Add(time.Minute)},
			{ID: 3, TaskID: 1, Time: now.Add(48 * time.Hour)},
		}},
	}}

	result := validator.ValidateData(tree(goal), now)
	if countType(result, ConflictInvalidDateTime) != 1 {
		t.Errorf("Expected 1 invalid time conflict, got: %s", result.FormatReport())
	}
	// A minute ahead is within the clock slack
	if countType(result, ConflictFutureCompletion) != 1 {
		t.Errorf("Expected 1 future completion conflict, got: %s", result.FormatReport())
	}
	if !strings.Contains(result.FormatReport(), "[error] Task \"Chapter\" has completion 1 without a time") {
		t.Errorf("unexpected report: %s", result.FormatReport())
	}
}

func TestValidateData_DuplicateNames(t *testing.T) {
	validator := New(reconcile.DefaultLineOptions())
	manual := &models.Goal{ID: 1, CategoryID: 1, Name: "Chores", Tasks: []*models.Task{
		{ID: 1, GoalID: 1, Name: "Dishes"},
		{ID: 2, GoalID: 1, PreviousID: 1, Name: "Dishes"},
	}}
	// Repeated lines are fine for line-based goals
	lines := &models.Goal{ID: 2, CategoryID: 1, PreviousID: 1, Name: "Chores", Details: "Sweep\nSweep", CreateTaskFromEachLine: true, Tasks: []*models.Task{
		{ID: 3, GoalID: 2, Name: "Sweep"},
		{ID: 4, GoalID: 2, PreviousID: 3, Name: "Sweep"},
	}}

	result := validator.ValidateData(tree(manual, lines), now)
	if countType(result, ConflictDuplicateTaskName) != 1 {
		t.Errorf("Expected 1 duplicate task conflict, got: %s", result.FormatReport())
	}
	if countType(result, ConflictDuplicateGoalName) != 1 {
		t.Errorf("Expected 1 duplicate goal conflict, got: %s", result.FormatReport())
	}
	if len(result.Errors()) != 0 {
		t.Errorf("duplicates should only be warnings")
	}
}

func TestValidateData_LinesOutOfSync(t *testing.T) {
	goal := &models.Goal{ID: 1, CategoryID: 1, Name: "Reading", Details: "one\n\ntwo", CreateTaskFromEachLine: true, Tasks: []*models.Task{
		{ID: 1, GoalID: 1, Name: "one"},
		{ID: 2, GoalID: 1, PreviousID: 1, Name: "two"},
	}}

	result := New(reconcile.DefaultLineOptions()).ValidateData(tree(goal), now)
	if result.HasConflicts() {
		t.Errorf("Expected blank line to be skipped, got: %s", result.FormatReport())
	}

	keepBlank := reconcile.DefaultLineOptions()
	keepBlank.SkipBlank = false
	result = New(keepBlank).ValidateData(tree(goal), now)
	if countType(result, ConflictLinesOutOfSync) != 1 {
		t.Errorf("Expected lines out of sync with blank lines kept, got: %s", result.FormatReport())
	}
}

func TestValidateData_EmptyNames(t *testing.T) {
	validator := New(reconcile.DefaultLineOptions())
	goal := &models.Goal{ID: 1, CategoryID: 1, Name: " ", Tasks: []*models.Task{{ID: 1, GoalID: 1}}}
	data := tree(goal)
	data.Categories[0].Categories = []*models.Category{{ID: 2, ParentID: 1}}

	result := validator.ValidateData(data, now)
	if countType(result, ConflictEmptyName) != 3 {
		t.Errorf("Expected 3 empty name conflicts, got: %s", result.FormatReport())
	}
}

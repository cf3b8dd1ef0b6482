package validation

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMultipleRoots     ConflictType = "multiple_roots"
	ConflictEmptyName         ConflictType = "empty_name"
	ConflictInvalidDateTime   ConflictType = "invalid_datetime"
	ConflictFutureCompletion  ConflictType = "future_completion"
	ConflictDuplicateGoalName ConflictType = "duplicate_goal_name"
	ConflictDuplicateTaskName ConflictType = "duplicate_task_name"
	ConflictLinesOutOfSync    ConflictType = "lines_out_of_sync"
)

// futureSlack tolerates small clock differences between machines sharing a database
const futureSlack = 5 * time.Minute

// Conflict represents a detected problem in the tree
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names involved
	IDs         []int64  // ids of the entities involved
}

// IsError reports whether the conflict means the data is damaged. Everything
// else is a warning the user may leave as is.
func (c Conflict) IsError() bool {
	switch c.Type {
	case ConflictMultipleRoots, ConflictEmptyName, ConflictInvalidDateTime:
		return true
	}
	return false
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) Errors() []Conflict {
	return vr.filter(Conflict.IsError)
}

func (vr *ValidationResult) Warnings() []Conflict {
	return vr.filter(func(c Conflict) bool { return !c.IsError() })
}

// OfType returns the conflicts of one type
func (vr *ValidationResult) OfType(t ConflictType) []Conflict {
	return vr.filter(func(c Conflict) bool { return c.Type == t })
}

func (vr *ValidationResult) filter(keep func(Conflict) bool) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		if conflict.IsError() {
			b.WriteString("- [error] ")
		} else {
			b.WriteString("- [warning] ")
		}
		b.WriteString(conflict.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// Validator checks a loaded tree for damage and drift
type Validator struct {
	opts reconcile.LineOptions
}

// New creates a Validator. opts must match the ones the tracker splits
// Details with, or every line-based goal is reported as out of sync.
func New(opts reconcile.LineOptions) *Validator {
	return &Validator{opts: opts}
}

// ValidateData checks data as of now
func (v *Validator) ValidateData(data *models.Data, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if len(data.Categories) > 1 {
		ids := make([]int64, len(data.Categories))
		for i, c := range data.Categories {
			ids[i] = c.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMultipleRoots,
			Description: fmt.Sprintf("Found %d root categories, expected one (IDs: %v)", len(data.Categories), ids),
			IDs:         ids,
		})
	}

	for _, root := range data.Categories {
		root.Walk(func(c *models.Category) bool {
			if strings.TrimSpace(c.Name) == "" {
				result.Conflicts = append(result.Conflicts, emptyName("Category", c.ID))
			}
			v.validateGoals(&result, c, now)
			return true
		})
	}

	return result
}

func (v *Validator) validateGoals(result *ValidationResult, category *models.Category, now time.Time) {
	goalIDs := make(map[string][]int64)
	for _, goal := range category.Goals {
		if strings.TrimSpace(goal.Name) == "" {
			result.Conflicts = append(result.Conflicts, emptyName("Goal", goal.ID))
		} else {
			goalIDs[goal.Name] = append(goalIDs[goal.Name], goal.ID)
		}

		if goal.CreateTaskFromEachLine {
			want := reconcile.Names(reconcile.SplitLines(goal.Details, v.opts))
			if !slices.Equal(want, goal.TaskNames()) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictLinesOutOfSync,
					Description: fmt.Sprintf("Goal \"%s\" has tasks that differ from its Details lines; saving its Details realigns them", goal.Name),
					Items:       []string{goal.Name},
					IDs:         []int64{goal.ID},
				})
			}
		}

		v.validateTasks(result, goal, now)
	}

	for _, name := range sortedKeys(goalIDs) {
		if ids := goalIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateGoalName,
				Description: fmt.Sprintf("Duplicate goal name in category \"%s\": \"%s\" (IDs: %v)", category.Name, name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}
}

func (v *Validator) validateTasks(result *ValidationResult, goal *models.Goal, now time.Time) {
	taskIDs := make(map[string][]int64)
	for _, task := range goal.Tasks {
		if strings.TrimSpace(task.Name) == "" {
			// Blank lines become unnamed tasks when blank lines are kept
			if !goal.CreateTaskFromEachLine || v.opts.SkipBlank {
				result.Conflicts = append(result.Conflicts, emptyName("Task", task.ID))
			}
		} else {
			taskIDs[task.Name] = append(taskIDs[task.Name], task.ID)
		}

		for _, tt := range task.Times {
			switch {
			case tt.Time.IsZero():
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDateTime,
					Description: fmt.Sprintf("Task \"%s\" has completion %d without a time", task.Name, tt.ID),
					Items:       []string{task.Name},
					IDs:         []int64{task.ID},
				})
			case tt.Time.After(now.Add(futureSlack)):
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictFutureCompletion,
					Description: fmt.Sprintf("Task \"%s\" has a completion in the future: %s", task.Name, tt.Time.Format(time.RFC3339)),
					Items:       []string{task.Name},
					IDs:         []int64{task.ID},
				})
			}
		}
	}

	// Repeated lines legitimately produce tasks with the same name
	if goal.CreateTaskFromEachLine {
		return
	}
	for _, name := range sortedKeys(taskIDs) {
		if ids := taskIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("Duplicate task name in goal \"%s\": \"%s\" (IDs: %v)", goal.Name, name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}
}

func emptyName(kind string, id int64) Conflict {
	return Conflict{
		Type:        ConflictEmptyName,
		Description: fmt.Sprintf("%s %d has an empty name", kind, id),
		IDs:         []int64{id},
	}
}

func sortedKeys(m map[string][]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

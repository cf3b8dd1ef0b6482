package tracker

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
)

// AddGoal appends a goal to the category
func (t *Tracker) AddGoal(categoryID int64, name string) (*models.Goal, error) {
	category, err := t.category(categoryID)
	if err != nil {
		return nil, err
	}
	if name, err = cleanName(name); err != nil {
		return nil, err
	}

	id, err := t.store.NextID(models.KindGoal)
	if err != nil {
		return nil, err
	}
	goal, err := category.CreateGoal(id, name)
	if err != nil {
		return nil, err
	}
	if err := t.store.AddGoal(*goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal, nil
}

func (t *Tracker) RenameGoal(id int64, name string) error {
	goal, err := t.goal(id)
	if err != nil {
		return err
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	goal.Name = clean
	return t.store.UpdateGoal(*goal)
}

// DeleteGoal removes the goal and its tasks
func (t *Tracker) DeleteGoal(id int64) error {
	goal, err := t.goal(id)
	if err != nil {
		return err
	}
	category, err := t.category(goal.CategoryID)
	if err != nil {
		return err
	}

	successor, err := category.RemoveGoal(goal)
	if err != nil {
		return err
	}
	if successor != nil {
		if err := t.store.UpdateGoal(*successor); err != nil {
			return fmt.Errorf("failed to relink goal %d: %w", successor.ID, err)
		}
	}
	return t.store.DeleteGoal(goal.ID)
}

// SetGoalDetails stores new Details and, when the goal creates a task from
// each line, reconciles its tasks. The goal is persisted before any task.
func (t *Tracker) SetGoalDetails(id int64, details string) ([]reconcile.Op, error) {
	goal, err := t.goal(id)
	if err != nil {
		return nil, err
	}

	goal.Details = details
	if err := t.store.UpdateGoal(*goal); err != nil {
		return nil, fmt.Errorf("failed to save goal details: %w", err)
	}

	if !goal.CreateTaskFromEachLine {
		return nil, nil
	}
	return t.reconciler.Reconcile(goal)
}

// ToggleCreateTaskFromEachLine flips the flag. Turning it on with Details
// present reconciles the tasks right away.
func (t *Tracker) ToggleCreateTaskFromEachLine(id int64) (bool, []reconcile.Op, error) {
	goal, err := t.goal(id)
	if err != nil {
		return false, nil, err
	}

	goal.CreateTaskFromEachLine = !goal.CreateTaskFromEachLine

	var ops []reconcile.Op
	if goal.CreateTaskFromEachLine && goal.Details != "" {
		if ops, err = t.reconciler.Reconcile(goal); err != nil {
			return goal.CreateTaskFromEachLine, ops, err
		}
	}

	if err := t.store.UpdateGoal(*goal); err != nil {
		return goal.CreateTaskFromEachLine, ops, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal.CreateTaskFromEachLine, ops, nil
}

// ToggleDisplayAsMarkdown flips the stored markdown flag
func (t *Tracker) ToggleDisplayAsMarkdown(id int64) (bool, error) {
	goal, err := t.goal(id)
	if err != nil {
		return false, err
	}
	goal.DisplayAsMarkdown = !goal.DisplayAsMarkdown
	return goal.DisplayAsMarkdown, t.store.UpdateGoal(*goal)
}

package tracker

import (
	"fmt"
	"time"

	"github.com/DEVBOX10/Ididit/internal/models"
)

// AddTask appends a task to the goal. A goal's Details are not rewritten, so
// on a goal that creates tasks from lines the next Details edit realigns it.
func (t *Tracker) AddTask(goalID int64, name string) (*models.Task, error) {
	goal, err := t.goal(goalID)
	if err != nil {
		return nil, err
	}
	if name, err = cleanName(name); err != nil {
		return nil, err
	}

	id, err := t.store.NextID(models.KindTask)
	if err != nil {
		return nil, err
	}
	task, err := goal.CreateTask(id, name)
	if err != nil {
		return nil, err
	}
	if err := t.store.AddTask(*task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return task, nil
}

func (t *Tracker) RenameTask(id int64, name string) error {
	task, _, err := t.task(id)
	if err != nil {
		return err
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	task.Name = clean
	return t.store.UpdateTask(*task)
}

func (t *Tracker) SetTaskDetails(id int64, details string) error {
	task, _, err := t.task(id)
	if err != nil {
		return err
	}
	task.DetailsText = details
	return t.store.UpdateTask(*task)
}

func (t *Tracker) DeleteTask(id int64) error {
	task, goal, err := t.task(id)
	if err != nil {
		return err
	}

	successor, err := goal.RemoveTask(task)
	if err != nil {
		return err
	}
	if successor != nil {
		if err := t.store.UpdateTask(*successor); err != nil {
			return fmt.Errorf("failed to relink task %d: %w", successor.ID, err)
		}
	}
	return t.store.DeleteTask(task.ID)
}

// MarkTaskDone records a completion. A zero at means now.
func (t *Tracker) MarkTaskDone(id int64, at time.Time) (models.TaskTime, error) {
	task, _, err := t.task(id)
	if err != nil {
		return models.TaskTime{}, err
	}
	if at.IsZero() {
		at = t.now()
	}

	timeID, err := t.store.NextID(models.KindTime)
	if err != nil {
		return models.TaskTime{}, err
	}
	tt := models.TaskTime{ID: timeID, TaskID: task.ID, Time: at}
	if err := t.store.AddTime(tt); err != nil {
		return models.TaskTime{}, fmt.Errorf("failed to save time: %w", err)
	}
	task.AddTime(tt)
	return tt, nil
}

// UndoTaskDone removes the most recent completion
func (t *Tracker) UndoTaskDone(id int64) error {
	task, _, err := t.task(id)
	if err != nil {
		return err
	}
	last, ok := task.LastTime()
	if !ok {
		return ErrNothingToUndo
	}
	if err := t.store.DeleteTime(last.ID); err != nil {
		return fmt.Errorf("failed to delete time: %w", err)
	}
	task.RemoveTime(last.ID)
	return nil
}

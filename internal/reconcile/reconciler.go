package reconcile

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/models"
)

// Repository is the persistence the reconciler needs. Calls are made in
// operation order and are expected to complete before the next one starts.
type Repository interface {
	NextID(kind models.Kind) (int64, error)
	AddTask(task models.Task) error
	UpdateTask(task models.Task) error
	DeleteTask(id int64) error
}

// Reconciler applies Details edits to a goal's task collection
type Reconciler struct {
	repo Repository
	opts LineOptions
}

// New creates a Reconciler persisting through repo
func New(repo Repository, opts LineOptions) *Reconciler {
	return &Reconciler{repo: repo, opts: opts}
}

// Options returns the line options the reconciler splits Details with
func (r *Reconciler) Options() LineOptions {
	return r.opts
}

// Reconcile aligns goal.Tasks with goal.Details and returns the operations it
// applied. The goal itself is not persisted here; callers save Details first.
//
// There is no rollback: when a persist call fails the pass stops and the
// collection keeps the operations applied so far.
func (r *Reconciler) Reconcile(goal *models.Goal) ([]Op, error) {
	lines := SplitLines(goal.Details, r.opts)
	ops := Diff(goal.TaskNames(), Names(lines))

	log := logger.For("reconcile")
	for _, op := range ops {
		var line Line
		if op.Kind != OpDelete {
			line = lines[op.NewIndex]
		}
		if err := r.apply(goal, op, line); err != nil {
			log.Error("Reconcile aborted", "goal", goal.ID, "op", op.String(), "error", err)
			return ops, fmt.Errorf("reconcile goal %d at %s: %w", goal.ID, op, err)
		}
	}

	counts := Counts(ops)
	log.Debug("Reconciled goal tasks",
		"goal", goal.ID,
		"keep", counts[OpKeep],
		"update", counts[OpUpdate],
		"insert", counts[OpInsert],
		"delete", counts[OpDelete],
	)
	return ops, nil
}

func (r *Reconciler) apply(goal *models.Goal, op Op, line Line) error {
	switch op.Kind {
	case OpKeep:
		task, err := taskAt(goal, op.NewIndex, op.Text)
		if err != nil {
			return err
		}
		if !r.opts.GroupDetails || task.DetailsText == line.DetailsText() {
			return nil
		}
		task.DetailsText = line.DetailsText()
		return r.repo.UpdateTask(*task)

	case OpUpdate:
		task, err := taskAt(goal, op.NewIndex, "")
		if err != nil {
			return err
		}
		task.Name = line.Name
		if r.opts.GroupDetails {
			task.DetailsText = line.DetailsText()
		}
		return r.repo.UpdateTask(*task)

	case OpInsert:
		id, err := r.repo.NextID(models.KindTask)
		if err != nil {
			return fmt.Errorf("failed to assign task id: %w", err)
		}
		task, successor, err := goal.CreateTaskAt(id, op.NewIndex, line.Name)
		if err != nil {
			return err
		}
		if r.opts.GroupDetails {
			task.DetailsText = line.DetailsText()
		}
		if successor != nil {
			if err := r.repo.UpdateTask(*successor); err != nil {
				return err
			}
		}
		return r.repo.AddTask(*task)

	case OpDelete:
		task, err := taskAt(goal, op.NewIndex, op.Text)
		if err != nil {
			return err
		}
		successor, err := goal.RemoveTask(task)
		if err != nil {
			return err
		}
		if successor != nil {
			if err := r.repo.UpdateTask(*successor); err != nil {
				return err
			}
		}
		return r.repo.DeleteTask(task.ID)
	}
	return fmt.Errorf("unknown operation %v", op.Kind)
}

// taskAt returns the task at the live position index. When name is not empty
// the task must carry it, otherwise the collection drifted from the diff.
func taskAt(goal *models.Goal, index int, name string) (*models.Task, error) {
	if index < 0 || index >= len(goal.Tasks) {
		return nil, fmt.Errorf("%w: no task at position %d", models.ErrIdentifierNotFound, index)
	}
	task := goal.Tasks[index]
	if name != "" && task.Name != name {
		return nil, fmt.Errorf("%w: task %d at position %d is %q, expected %q",
			models.ErrIdentifierNotFound, task.ID, index, task.Name, name)
	}
	return task, nil
}

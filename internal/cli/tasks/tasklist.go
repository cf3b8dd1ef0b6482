package tasks

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
)

type TaskListCmd struct {
	Goal int64 `arg:"" help:"Goal ID."`
	All  bool  `help:"Show every recorded completion."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	goal, ok := tr.Data().Goal(c.Goal)
	if !ok {
		return fmt.Errorf("%w: goal %d", models.ErrIdentifierNotFound, c.Goal)
	}

	if len(goal.Tasks) == 0 {
		ctx.Println("No tasks found")
		return nil
	}

	ctx.Printf("Tasks of %s:\n", goal.Name)
	for _, task := range goal.Tasks {
		status := "todo"
		if tr.IsDone(task) {
			status = "done"
		}
		last := "never"
		if tt, ok := task.LastTime(); ok {
			last = tt.Time.Local().Format(constants.DisplayTimeFormat)
		}
		ctx.Printf("  [%s] %d %s (done %d times, last %s)\n", status, task.ID, task.Name, len(task.Times), last)

		if c.All {
			for _, tt := range task.Times {
				ctx.Printf("      %s\n", tt.Time.Local().Format(constants.DisplayTimeFormat))
			}
		}
	}
	return nil
}

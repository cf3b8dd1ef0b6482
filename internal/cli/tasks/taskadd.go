package tasks

import (
	"github.com/DEVBOX10/Ididit/internal/cli"
)

type TaskAddCmd struct {
	Goal int64  `arg:"" help:"Goal ID."`
	Name string `arg:"" help:"Task name."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	task, err := tr.AddTask(c.Goal, c.Name)
	if err != nil {
		return err
	}
	ctx.Printf("Added task %d: %s\n", task.ID, task.Name)
	return nil
}

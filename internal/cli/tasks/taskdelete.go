package tasks

import (
	"github.com/DEVBOX10/Ididit/internal/cli"
)

type TaskDeleteCmd struct {
	ID int64 `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteTask(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted task %d\n", c.ID)
	return nil
}

package tasks

import (
	"github.com/DEVBOX10/Ididit/internal/cli"
)

type TaskRenameCmd struct {
	ID   int64  `arg:"" help:"Task ID."`
	Name string `arg:"" help:"New name."`
}

func (c *TaskRenameCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.RenameTask(c.ID, c.Name); err != nil {
		return err
	}
	ctx.Printf("Renamed task %d\n", c.ID)
	return nil
}

type TaskDetailsCmd struct {
	ID   int64  `arg:"" help:"Task ID."`
	Text string `arg:"" optional:"" help:"Detail text; empty clears it."`
}

func (c *TaskDetailsCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.SetTaskDetails(c.ID, c.Text); err != nil {
		return err
	}
	ctx.Printf("Details saved for task %d\n", c.ID)
	return nil
}

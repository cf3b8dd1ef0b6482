package tasks

import (
	"fmt"
	"time"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/constants"
)

type TaskDoneCmd struct {
	ID int64  `arg:"" help:"Task ID."`
	At string `help:"Completion time (YYYY-MM-DD HH:MM in local time, or RFC 3339). Defaults to now."`
}

func (c *TaskDoneCmd) Validate() error {
	_, err := parseAt(c.At)
	return err
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	at, err := parseAt(c.At)
	if err != nil {
		return err
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	tt, err := tr.MarkTaskDone(c.ID, at)
	if err != nil {
		return err
	}
	ctx.Printf("Task %d done at %s\n", c.ID, tt.Time.Local().Format(constants.DisplayTimeFormat))
	return nil
}

// parseAt reads a completion time; an empty string yields the zero time
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(constants.DisplayTimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected %q or RFC 3339)", s, constants.DisplayTimeFormat)
}

type TaskUndoCmd struct {
	ID int64 `arg:"" help:"Task ID."`
}

func (c *TaskUndoCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.UndoTaskDone(c.ID); err != nil {
		return err
	}
	ctx.Printf("Removed the last completion of task %d\n", c.ID)
	return nil
}

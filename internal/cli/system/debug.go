package system

import (
	"encoding/json"
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/config"
)

type DebugCmd struct {
	DBPath   DebugDBPathCmd   `cmd:"" name:"db-path" help:"Show database path."`
	DumpGoal DebugDumpGoalCmd `cmd:"" help:"Dump goal data as JSON."`
	DumpTask DebugDumpTaskCmd `cmd:"" help:"Dump task data as JSON."`
	Env      DebugEnvCmd      `cmd:"" help:"List the environment variables ididit reads."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":     maskPassword(ctx.Store.GetConfigPath()),
		"settings": ctx.Config.SettingsPath,
		"config":   ctx.Config.ConfigDir(),
	})
}

type DebugDumpGoalCmd struct {
	ID int64 `arg:"" help:"ID of the goal to dump."`
}

func (cmd *DebugDumpGoalCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	goal, ok := tr.Data().Goal(cmd.ID)
	if !ok {
		return fmt.Errorf("goal not found: %d", cmd.ID)
	}
	return printJSON(ctx, goal)
}

type DebugDumpTaskCmd struct {
	ID int64 `arg:"" help:"ID of the task to dump."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	task, ok := tr.Data().Task(cmd.ID)
	if !ok {
		return fmt.Errorf("task not found: %d", cmd.ID)
	}
	return printJSON(ctx, task)
}

type DebugEnvCmd struct{}

func (cmd *DebugEnvCmd) Run(ctx *cli.Context) error {
	ctx.Println(config.Usage())
	return nil
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

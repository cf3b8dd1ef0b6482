package goals

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
)

type GoalCmd struct {
	Add            GoalAddCmd            `cmd:"" help:"Add a goal."`
	Rename         GoalRenameCmd         `cmd:"" help:"Rename a goal."`
	Delete         GoalDeleteCmd         `cmd:"" help:"Delete a goal with its tasks."`
	List           GoalListCmd           `cmd:"" help:"List goals." default:"1"`
	Show           GoalShowCmd           `cmd:"" help:"Show a goal with its details and tasks."`
	Details        GoalDetailsCmd        `cmd:"" help:"Replace a goal's details and reconcile its tasks."`
	ToggleLines    GoalToggleLinesCmd    `cmd:"" name:"toggle-lines" help:"Toggle creating a task from each details line."`
	ToggleMarkdown GoalToggleMarkdownCmd `cmd:"" name:"toggle-markdown" help:"Toggle showing details as markdown."`
}

type GoalAddCmd struct {
	Name     string `arg:"" help:"Goal name."`
	Category int64  `help:"Category ID (defaults to the root category)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	goal, err := tr.AddGoal(c.Category, c.Name)
	if err != nil {
		return err
	}
	ctx.Printf("Added goal %d: %s\n", goal.ID, goal.Name)
	return nil
}

type GoalRenameCmd struct {
	ID   int64  `arg:"" help:"Goal ID."`
	Name string `arg:"" help:"New name."`
}

func (c *GoalRenameCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.RenameGoal(c.ID, c.Name); err != nil {
		return err
	}
	ctx.Printf("Renamed goal %d\n", c.ID)
	return nil
}

type GoalDeleteCmd struct {
	ID int64 `arg:"" help:"Goal ID."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	if err := tr.DeleteGoal(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted goal %d\n", c.ID)
	return nil
}

type GoalListCmd struct {
	Category int64              `help:"Only list goals of this category."`
	Sort     constants.SortMode `help:"Sort order (none, name, elapsed-time, elapsed-to-desired-ratio). Defaults to the stored setting."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	goals := tr.Data().Goals()
	if c.Category != 0 {
		category, ok := tr.Data().Category(c.Category)
		if !ok {
			return fmt.Errorf("%w: category %d", models.ErrIdentifierNotFound, c.Category)
		}
		goals = category.Goals
	}

	mode := c.Sort
	if mode == "" {
		mode = tr.Settings().Sort
	}
	if !slices.Contains(constants.SortModes, mode) {
		return fmt.Errorf("invalid sort %q (want one of %v)", mode, constants.SortModes)
	}
	goals = models.SortGoals(goals, mode, time.Now())

	if len(goals) == 0 {
		ctx.Println("No goals yet. Add one with 'ididit goal add <name>'.")
		return nil
	}
	for _, goal := range goals {
		done := 0
		for _, task := range goal.Tasks {
			if tr.IsDone(task) {
				done++
			}
		}
		last := "never"
		if at, ok := goal.LastDone(); ok {
			last = at.Local().Format(constants.DisplayTimeFormat)
		}
		ctx.Printf("[%d] %s  (%d/%d done, last %s)\n", goal.ID, goal.Name, done, len(goal.Tasks), last)
	}
	return nil
}

type GoalShowCmd struct {
	ID int64 `arg:"" help:"Goal ID."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	goal, ok := tr.Data().Goal(c.ID)
	if !ok {
		return fmt.Errorf("%w: goal %d", models.ErrIdentifierNotFound, c.ID)
	}

	ctx.Printf("Goal %d: %s\n", goal.ID, goal.Name)
	ctx.Printf("  Task from each line: %v\n", goal.CreateTaskFromEachLine)
	ctx.Printf("  Markdown:            %v\n", goal.DisplayAsMarkdown)
	if goal.Details != "" {
		ctx.Println("\nDetails:")
		ctx.Println(goal.Details)
	}

	ctx.Println("\nTasks:")
	if len(goal.Tasks) == 0 {
		ctx.Println("  (none)")
	}
	for _, task := range goal.Tasks {
		mark := " "
		if tr.IsDone(task) {
			mark = "x"
		}
		ctx.Printf("  [%s] %d %s\n", mark, task.ID, task.Name)
		for _, line := range task.DetailLines() {
			ctx.Printf("        %s\n", line)
		}
	}
	return nil
}

type GoalDetailsCmd struct {
	ID   int64  `arg:"" help:"Goal ID."`
	Text string `help:"New details text." xor:"source"`
	File string `help:"Read details from a file ('-' for stdin)." xor:"source"`
}

func (c *GoalDetailsCmd) Run(ctx *cli.Context) error {
	details, err := c.read(ctx)
	if err != nil {
		return err
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	ops, err := tr.SetGoalDetails(c.ID, details)
	if err != nil {
		return err
	}
	ctx.Printf("Details saved for goal %d%s\n", c.ID, summarize(ops))
	return nil
}

// read picks the details from --text, --file or stdin, in that order
func (c *GoalDetailsCmd) read(ctx *cli.Context) (string, error) {
	if c.Text != "" {
		return c.Text, nil
	}

	var r io.Reader = ctx.In
	if c.File != "" && c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to open details file: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return "", errors.New("no details given; use --text, --file or pipe them on stdin")
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read details: %w", err)
	}
	return string(b), nil
}

type GoalToggleLinesCmd struct {
	ID int64 `arg:"" help:"Goal ID."`
}

func (c *GoalToggleLinesCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	on, ops, err := tr.ToggleCreateTaskFromEachLine(c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Task from each line is now %s for goal %d%s\n", onOff(on), c.ID, summarize(ops))
	return nil
}

type GoalToggleMarkdownCmd struct {
	ID int64 `arg:"" help:"Goal ID."`
}

func (c *GoalToggleMarkdownCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	on, err := tr.ToggleDisplayAsMarkdown(c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Markdown is now %s for goal %d\n", onOff(on), c.ID)
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// summarize counts the task changes of a reconcile pass
func summarize(ops []reconcile.Op) string {
	if !reconcile.Changed(ops) {
		return ""
	}
	counts := reconcile.Counts(ops)
	return fmt.Sprintf(" (tasks: %d added, %d updated, %d removed)",
		counts[reconcile.OpInsert], counts[reconcile.OpUpdate], counts[reconcile.OpDelete])
}

package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
	"github.com/DEVBOX10/Ididit/internal/storage/sqlstore"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Lock(); err != nil {
		return err
	}

	target := ctx.Store.GetConfigPath()
	if c.Force {
		if err := c.reset(ctx, target); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized ididit storage at: %s\n", target)

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context, target string) error {
	if sqlstore.IsPostgresTarget(target) {
		return errors.New("--force only works for file databases; drop the PostgreSQL schema by hand")
	}
	if c.Source != "" && samePath(c.Source, target) {
		return fmt.Errorf("cannot use --force when source and destination are the same: %s", target)
	}

	if _, err := os.Stat(target); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", target)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// copyData copies every entity of the source store into the freshly
// initialized destination, keeping identifiers.
func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	if sqlstore.IsPostgresTarget(source) {
		if _, err := sqlstore.ValidateConnString(source); err != nil {
			if errors.Is(err, sqlstore.ErrEmbeddedCredentials) {
				return errors.New("PostgreSQL source connection string contains embedded credentials; use .pgpass or the keyring instead")
			}
			return err
		}
	}

	src, err := cli.OpenStore(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	data, err := src.LoadData()
	if err != nil {
		return fmt.Errorf("failed to read source database: %w", err)
	}
	return copyInto(ctx, ctx.Store, data)
}

func copyInto(ctx *cli.Context, dst storage.Provider, data *models.Data) error {
	categories, goals, tasks, times := data.Flatten()

	ctx.Println("  Copying settings...")
	if err := dst.SaveSettings(data.Settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying categories...")
	for _, category := range categories {
		if err := dst.AddCategory(category); err != nil {
			return fmt.Errorf("failed to add category %d: %w", category.ID, err)
		}
	}
	ctx.Printf("    Copied %d categories\n", len(categories))

	ctx.Println("  Copying goals...")
	for _, goal := range goals {
		if err := dst.AddGoal(goal); err != nil {
			return fmt.Errorf("failed to add goal %d: %w", goal.ID, err)
		}
	}
	ctx.Printf("    Copied %d goals\n", len(goals))

	ctx.Println("  Copying tasks...")
	for _, task := range tasks {
		if err := dst.AddTask(task); err != nil {
			return fmt.Errorf("failed to add task %d: %w", task.ID, err)
		}
	}
	ctx.Printf("    Copied %d tasks\n", len(tasks))

	for _, tt := range times {
		if err := dst.AddTime(tt); err != nil {
			return fmt.Errorf("failed to add time %d: %w", tt.ID, err)
		}
	}
	ctx.Printf("    Copied %d completion times\n", len(times))

	return nil
}

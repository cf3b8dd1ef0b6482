package system

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/storage/sqlstore"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlstore.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQL databases")
	}
	if err := ctx.Lock(); err != nil {
		return err
	}
	if err := store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	count, err := store.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

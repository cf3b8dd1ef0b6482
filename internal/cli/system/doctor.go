package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/lock"
	"github.com/DEVBOX10/Ididit/internal/storage/sqlstore"
	"github.com/DEVBOX10/Ididit/internal/validation"
)

type DoctorCmd struct{}

type severity int

const (
	severityError severity = iota
	severityWarning
)

type check struct {
	name     string
	severity severity
	needsDB  bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Data integrity", needsDB: true, run: checkDataIntegrity},
	{name: "Goal lines in sync", severity: severityWarning, needsDB: true, run: checkLinesInSync},
	{name: "Data consistency", severity: severityWarning, needsDB: true, run: checkDataConsistency},
	{name: "Backups present", severity: severityWarning, run: checkBackupsPresent},
	{name: "Instance lock", severity: severityWarning, run: checkLock},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.severity == severityWarning:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if store, ok := ctx.Store.(*sqlstore.Store); ok {
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlstore.Store)
	if !ok {
		// JSON documents carry their own version, checked on load
		return nil
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version %d is newer than this binary supports (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlstore.Store)
	if !ok {
		return nil
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("%d migration(s) pending, run 'ididit migrate'", latest-current)
	}
	return nil
}

func validateData(ctx *cli.Context) (validation.ValidationResult, error) {
	data, err := ctx.Store.LoadData()
	if err != nil {
		return validation.ValidationResult{}, err
	}
	return validation.New(ctx.Config.Lines.Options()).ValidateData(data, time.Now()), nil
}

// conflictsError folds conflicts into one error, one description per line
func conflictsError(conflicts []validation.Conflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	lines := make([]string, len(conflicts))
	for i, c := range conflicts {
		lines[i] = c.Description
	}
	return errors.New(strings.Join(lines, "\n   "))
}

func checkDataIntegrity(ctx *cli.Context) error {
	result, err := validateData(ctx)
	if err != nil {
		return err
	}
	return conflictsError(result.Errors())
}

// checkLinesInSync reports goals whose tasks no longer match their Details
// lines. Manual task edits leave Details untouched, so drift is only a warning.
func checkLinesInSync(ctx *cli.Context) error {
	result, err := validateData(ctx)
	if err != nil {
		return err
	}
	return conflictsError(result.OfType(validation.ConflictLinesOutOfSync))
}

func checkDataConsistency(ctx *cli.Context) error {
	result, err := validateData(ctx)
	if err != nil {
		return err
	}
	var rest []validation.Conflict
	for _, c := range result.Warnings() {
		if c.Type != validation.ConflictLinesOutOfSync {
			rest = append(rest, c)
		}
	}
	return conflictsError(rest)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, cli.ErrNoSQLite) {
		return nil
	}
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'ididit backup create'")
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	path := filepath.Join(ctx.Config.ConfigDir(), constants.LockFileName)
	holder := lock.ReadHolder(path)
	if holder.Alive && holder.PID != os.Getpid() {
		return fmt.Errorf("ididit is running as %s", holder)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

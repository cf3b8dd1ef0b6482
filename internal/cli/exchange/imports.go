package exchange

import (
	"fmt"
	"io"
	"os"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/importer/keep"
	"github.com/DEVBOX10/Ididit/internal/transfer"
)

type ImportCmd struct {
	Keep ImportKeepCmd `cmd:"" help:"Import notes from a Google Keep Takeout archive."`
	Data ImportDataCmd `cmd:"" help:"Import a document written by 'ididit export'."`
}

type ImportKeepCmd struct {
	Archive         string `arg:"" help:"Takeout zip file." type:"existingfile"`
	Category        int64  `help:"Category ID to add the goals to (defaults to the root category)."`
	Preview         bool   `help:"Print the notes instead of importing them."`
	IncludeTrashed  bool   `help:"Also import notes from the trash."`
	IncludeArchived bool   `help:"Also import archived notes."`
}

func (c *ImportKeepCmd) Run(ctx *cli.Context) error {
	notes, err := keep.ReadFile(c.Archive, keep.ReadOptions{
		IncludeTrashed:  c.IncludeTrashed,
		IncludeArchived: c.IncludeArchived,
	})
	if err != nil {
		return err
	}

	if c.Preview {
		ctx.Println(keep.Preview(notes))
		return nil
	}

	if len(notes) == 0 {
		ctx.Println("No notes found in the archive.")
		return nil
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	result, err := keep.NewImporter(tr).Import(c.Category, notes)
	if err != nil {
		return fmt.Errorf("import failed after %d goals: %w", result.Goals, err)
	}
	ctx.Printf("✓ Imported %d goals with %d tasks\n", result.Goals, result.Tasks)
	return nil
}

type ImportDataCmd struct {
	File     string `arg:"" help:"Document to import ('-' for stdin)."`
	Format   string `help:"Document format (json or yaml). Defaults to the file extension."`
	Settings bool   `help:"Also replace the settings with the document's."`
}

func (c *ImportDataCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.File)
	if err != nil {
		return err
	}

	var r io.Reader = ctx.In
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.File, err)
		}
		defer f.Close()
		r = f
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	summary, err := transfer.Import(tr, r, format, transfer.ImportOptions{Settings: c.Settings})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported export %s: %d categories, %d goals, %d tasks, %d completions\n",
		summary.ExportID, summary.Categories, summary.Goals, summary.Tasks, summary.Times)
	return nil
}

// resolveFormat prefers an explicit format over the file extension
func resolveFormat(name, path string) (transfer.Format, error) {
	if name != "" {
		return transfer.ParseFormat(name)
	}
	return transfer.FormatForPath(path), nil
}

package exchange

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/transfer"
)

type ExportCmd struct {
	File   string `arg:"" help:"Output file ('-' for stdout)."`
	Format string `help:"Document format (json or yaml). Defaults to the file extension."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.File)
	if err != nil {
		return err
	}

	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.File == "-" {
		_, err := transfer.Export(tr.Data(), ctx.Out, format)
		return err
	}

	doc, err := writeFile(c.File, func(w io.Writer) (transfer.Document, error) {
		return transfer.Export(tr.Data(), w, format)
	})
	if err != nil {
		return err
	}
	ctx.Printf("✓ Exported to %s (export id %s)\n", c.File, doc.ExportID)
	return nil
}

// writeFile writes through a temporary file beside path and renames it into
// place once fn succeeds.
func writeFile(path string, fn func(io.Writer) (transfer.Document, error)) (transfer.Document, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return transfer.Document{}, fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	doc, err := fn(tmp)
	if err != nil {
		tmp.Close()
		return transfer.Document{}, fmt.Errorf("export failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return transfer.Document{}, fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return transfer.Document{}, fmt.Errorf("failed to write export file: %w", err)
	}
	return doc, nil
}

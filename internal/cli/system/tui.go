package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	// Backups run after a successful load so a broken database is never rotated in
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(tr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

package system

import (
	"time"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	ctx.Println("Validating categories, goals and tasks...")
	result := validation.New(tr.Options()).ValidateData(tr.Data(), time.Now())

	// Conflicts are reported, not returned as an error
	ctx.Println()
	ctx.Println(result.FormatReport())
	return nil
}

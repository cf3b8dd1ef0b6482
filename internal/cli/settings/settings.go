package settings

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/cli"
	"github.com/DEVBOX10/Ididit/internal/models"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"List current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change one setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	values := models.SettingsToMap(tr.Settings())
	ctx.Println("Current Settings:")
	for _, key := range models.SettingKeys {
		ctx.Printf("  %-40s %s\n", key+":", values[key])
	}

	ctx.Println("\nLine Options:")
	opts := tr.Options()
	ctx.Printf("  %-40s %v\n", "skip blank lines:", opts.SkipBlank)
	ctx.Printf("  %-40s %v\n", "group \"- \" detail lines:", opts.GroupDetails)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name, see 'ididit settings show'."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	settings := tr.Settings()
	if err := settings.Set(c.Key, c.Value); err != nil {
		return err
	}
	if err := tr.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("Setting %s updated to %q.\n", c.Key, c.Value)
	return nil
}

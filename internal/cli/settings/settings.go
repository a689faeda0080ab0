package settings

import (
	"fmt"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/utils"
)

type SettingsCmd struct {
	List     bool    `help:"List current settings."`
	Timezone *string `help:"IANA timezone used to decide today's date ('Local' for the system zone)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		s.Settings.Timezone = *c.Timezone
		if err := s.SaveSettings(); err != nil {
			return err
		}
		ctx.Println("Settings updated successfully.")
		if !c.List {
			return nil
		}
	}

	if !c.List {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:           %s\n", s.Settings.Timezone)
	ctx.Printf("  Color presets:      %d\n", len(s.Settings.ColorPresets))
	ctx.Printf("  Activity categories: %d\n", len(s.Settings.ActivityCategories))
	ctx.Printf("  CSV dialect:        %s\n", ctx.Dialect())
	ctx.Printf("  Store:              %s\n", ctx.Store.GetConfigPath())
	return nil
}

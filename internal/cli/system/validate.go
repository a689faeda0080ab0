package system

import (
	"fmt"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	v := validation.New()
	settingsResult := v.ValidateSettings(s.Settings)
	tableResult := v.ValidateTable(s.Table, s.Settings)

	ctx.Println("Settings:")
	ctx.Println(settingsResult.FormatReport())
	ctx.Println("Time table:")
	ctx.Println(tableResult.FormatReport())

	if settingsResult.HasErrors() || tableResult.HasErrors() {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

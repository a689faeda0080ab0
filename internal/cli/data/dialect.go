package data

import (
	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/constants"
)

// dialectFor prefers an explicit flag over the config file.
func dialectFor(ctx *cli.Context, flag string) constants.CSVDialect {
	if flag != "" {
		return constants.CSVDialect(flag)
	}
	return ctx.Dialect()
}

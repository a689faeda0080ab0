package table

import (
	"github.com/julianstephens/hourlog/internal/cli"
)

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Ask(
			"Clear all data?",
			"Every day record, color preset and category will be deleted.",
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if err := s.Clear(); err != nil {
		return err
	}

	ctx.Println("✓ All data cleared")
	return nil
}

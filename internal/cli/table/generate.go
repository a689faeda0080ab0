package table

import (
	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/timetable"
)

type GenerateCmd struct {
	Range string `help:"Span to generate (week or month)." enum:"week,month" default:"week"`
	Date  string `help:"Reference date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	kind, err := timetable.ParseRangeKind(c.Range)
	if err != nil {
		return err
	}
	ref, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	before := len(s.Table)
	window, err := s.Generate(kind, ref)
	if err != nil {
		return err
	}

	dates := window.Dates()
	ctx.Printf("Generated %s %s to %s (%d days, %d new)\n",
		kind, dates[0], dates[len(dates)-1], len(window), len(s.Table)-before)
	return nil
}

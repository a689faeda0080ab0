package table

import (
	"fmt"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/timetable"
)

type ShowCmd struct {
	Range string `help:"Span to show (week or month)." enum:"week,month" default:"week"`
	Date  string `help:"Reference date (YYYY-MM-DD or 'today')." default:"today"`
	From  int    `help:"First hour row to show." default:"0"`
	To    int    `help:"Last hour row to show." default:"23"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if c.From < 0 || c.To >= constants.HoursPerDay || c.From > c.To {
		return fmt.Errorf("invalid hour window %d-%d (expected 0 <= from <= to <= 23)", c.From, c.To)
	}
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

	window, err := s.View(kind, ref)
	if err != nil {
		return err
	}
	ctx.Println(RenderGrid(window, c.From, c.To))
	return nil
}

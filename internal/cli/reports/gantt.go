package reports

import (
	"fmt"
	"os"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/gantt"
)

type GanttCmd struct {
	Start  string `arg:"" help:"First date of the chart (YYYY-MM-DD or 'today')."`
	End    string `arg:"" help:"Last date of the chart (YYYY-MM-DD or 'today')."`
	Latest bool   `help:"Extend the most recent run of an activity instead of only its first run."`
	Out    string `short:"o" help:"Write the chart to a file instead of stdout."`
}

func (c *GanttCmd) Run(ctx *cli.Context) error {
	start, err := ctx.DateArg(c.Start)
	if err != nil {
		return err
	}
	end, err := ctx.DateArg(c.End)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	mode := gantt.FirstMatch
	if c.Latest {
		mode = gantt.LatestMatch
	}
	chart, err := gantt.BuildRange(start, end, s.Table, mode)
	if err != nil {
		return err
	}

	if c.Out == "" {
		ctx.Println(chart)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(chart+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	ctx.Printf("✓ Gantt chart written to %s\n", c.Out)
	return nil
}

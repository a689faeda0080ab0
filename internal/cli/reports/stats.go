package reports

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/stats"
	"github.com/julianstephens/hourlog/internal/utils"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type StatsCmd struct {
	Start string `arg:"" help:"First date (YYYY-MM-DD or 'today')."`
	End   string `arg:"" help:"Last date (YYYY-MM-DD or 'today')."`
	Top   int    `help:"Show at most this many activities (0 for all)." default:"10"`
	Daily bool   `help:"Also list tagged hours per day."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	startStr, err := ctx.DateArg(c.Start)
	if err != nil {
		return err
	}
	endStr, err := ctx.DateArg(c.End)
	if err != nil {
		return err
	}
	start, end, err := utils.ParseRange(startStr, endStr)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	ctx.Println(RenderSummary(stats.Compute(start, end, s.Table), c.Top, c.Daily))
	return nil
}

// RenderSummary formats a summary for the terminal. top limits the activity list.
func RenderSummary(sum stats.Summary, top int, daily bool) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Time from %s to %s (%d days)",
		utils.FormatDate(sum.Start), utils.FormatDate(sum.End), sum.Days)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Tagged: %s\n", stats.HumanDuration(sum.Duration))

	if sum.Hours == 0 {
		b.WriteString("\nNo tagged hours in this range.")
		return b.String()
	}

	b.WriteString("\n" + sectionStyle.Render("By category") + "\n")
	writeBuckets(&b, sum.Categories)

	activities := sum.Activities
	if top > 0 && len(activities) > top {
		activities = activities[:top]
	}
	b.WriteString("\n" + sectionStyle.Render("By activity") + "\n")
	writeBuckets(&b, activities)

	if daily {
		b.WriteString("\n" + sectionStyle.Render("By day") + "\n")
		for _, d := range sum.PerDay {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				nameStyle.Render(d.Weekday+" "+d.Date),
				valueStyle.Render(stats.HumanDuration(d.Duration)),
			))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeBuckets(b *strings.Builder, buckets []stats.Bucket) {
	for _, bucket := range buckets {
		filled := int(bucket.Share*barWidth + 0.5)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(bucket.Name),
			valueStyle.Render(fmt.Sprintf("%s %4s", stats.HumanDuration(bucket.Duration), stats.Percent(bucket.Share))),
			barStyle.Render(strings.Repeat("█", filled)),
		))
		b.WriteString("\n")
	}
}

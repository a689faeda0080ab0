package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hourlog/internal/colors"
	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
)

const (
	cellWidth  = 14
	labelWidth = 7
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Width(cellWidth)

	hourLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(labelWidth)
)

// cellStyle paints the cell background and picks a readable text color for it.
func cellStyle(color string) lipgloss.Style {
	bg, ok := colors.Normalize(color)
	if !ok {
		bg = constants.DefaultCellColor
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(colors.FontColorFor(bg))).
		Width(cellWidth)
}

// RenderGrid lays window out with one column per date and one row per hour in
// [fromHour, toHour].
func RenderGrid(window models.TimeTable, fromHour, toHour int) string {
	dates := window.Dates()

	header := []string{hourLabelStyle.Render("")}
	for _, date := range dates {
		day := window[date]
		// "Mon 01-02"
		header = append(header, headerStyle.Render(fmt.Sprintf("%s %s", day.Weekday, date[5:])))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for hour := fromHour; hour <= toHour; hour++ {
		row := []string{hourLabelStyle.Render(fmt.Sprintf("%02d:00", hour))}
		for _, date := range dates {
			cell := window[date].Hours[hour]
			row = append(row, cellStyle(cell.Color).Render(truncate(cell.Activity, cellWidth-1)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, width int) string {
	s = strings.TrimSpace(s)
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

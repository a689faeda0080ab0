package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/colors"
	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

type SetCmd struct {
	Date     string  `arg:"" help:"Date of the cell (YYYY-MM-DD or 'today')."`
	Hour     string  `arg:"" help:"Hour of the cell (0-23 or H:00)."`
	Color    *string `help:"Background color as hex."`
	Activity *string `help:"Activity label."`
	Category *string `help:"Activity category."`
	Reset    bool    `help:"Reset the cell to the default blank white cell."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	hour, err := parseHour(c.Hour)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	key := utils.FormatDate(date)
	rec := models.DefaultHour()
	if day, ok := s.Table[key]; ok && !c.Reset {
		rec = day.Hours[hour]
	}

	if c.Color != nil {
		color, ok := colors.Normalize(*c.Color)
		if !ok {
			return fmt.Errorf("invalid color %q (expected #rrggbb)", *c.Color)
		}
		rec.Color = color
	}
	if c.Activity != nil {
		rec.Activity = *c.Activity
	}
	if c.Category != nil {
		rec.Category = *c.Category
	}

	if err := s.SetCell(date, hour, rec); err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		return err
	}
	if err := s.SaveSettings(); err != nil {
		return err
	}

	ctx.Printf("✓ %s %02d:00 set to %q (%s", key, hour, rec.Activity, rec.Color)
	if rec.Category != "" {
		ctx.Printf(", %s", rec.Category)
	}
	ctx.Println(")")
	return nil
}

// parseHour accepts "9", "09" or "9:00".
func parseHour(s string) (int, error) {
	h, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	hour, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hour < 0 || hour >= constants.HoursPerDay {
		return 0, fmt.Errorf("invalid hour %q, hour must be between 0:00 and 23:00", s)
	}
	return hour, nil
}

package timetable

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

// PersistFunc saves a whole table. Generate treats it as fire-and-forget.
type PersistFunc func(models.TimeTable) error

// Range selects the week or month around a reference date.
type Range struct {
	Kind      constants.RangeKind
	Reference time.Time
}

// ParseRangeKind accepts "week" or "month" in any case.
func ParseRangeKind(s string) (constants.RangeKind, error) {
	switch constants.RangeKind(strings.ToLower(strings.TrimSpace(s))) {
	case constants.RangeWeek:
		return constants.RangeWeek, nil
	case constants.RangeMonth:
		return constants.RangeMonth, nil
	default:
		return "", fmt.Errorf("invalid range %q (expected week or month)", s)
	}
}

// Bounds returns the inclusive first and last calendar day of the range.
// Weeks start on Sunday.
func (r Range) Bounds() (time.Time, time.Time, error) {
	ref := utils.DateOf(r.Reference)
	switch r.Kind {
	case constants.RangeWeek:
		start := ref.AddDate(0, 0, -int(ref.Weekday()))
		return start, start.AddDate(0, 0, 6), nil
	case constants.RangeMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		// day 0 of the next month is the last day of this one
		end := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid range %q (expected week or month)", r.Kind)
	}
}

// Generate returns a table holding exactly the dates of r. Existing day records are
// carried over unchanged and missing dates get 24 default hours. existing is not
// modified. The result is handed to persist when it is non-nil; a persist failure is
// logged and never returned.
func Generate(existing models.TimeTable, r Range, persist PersistFunc) (models.TimeTable, error) {
	start, end, err := r.Bounds()
	if err != nil {
		return nil, err
	}

	table := make(models.TimeTable, utils.DaysInRange(start, end))
	utils.EachDate(start, end, func(d time.Time) {
		date := utils.FormatDate(d)
		if day, ok := existing[date]; ok {
			table[date] = day
			return
		}
		table[date] = models.NewDayRecord(date, utils.WeekdayAbbrev(d))
	})

	if persist != nil {
		if err := persist(table); err != nil {
			logger.Warn("Failed to persist generated time table", "range", r.Kind, "start", utils.FormatDate(start), "error", err)
		}
	}

	return table, nil
}

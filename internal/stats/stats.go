// Package stats aggregates tagged hours over a date range.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

// Bucket is the time spent on one category or activity.
type Bucket struct {
	Name     string
	Hours    int
	Duration time.Duration
	Share    float64 // fraction of Summary.Hours, 0 when nothing is tagged
}

// Day is the tagged time on one calendar day.
type Day struct {
	Date     string
	Weekday  string
	Hours    int
	Duration time.Duration
}

// Summary covers an inclusive date range. Only cells with an activity count.
type Summary struct {
	Start      time.Time
	End        time.Time
	Days       int
	Hours      int
	Duration   time.Duration
	Categories []Bucket
	Activities []Bucket
	PerDay     []Day
}

// Compute aggregates table over [start, end]. Dates missing from the table are
// reported as zero-hour days so PerDay always has one entry per calendar day.
func Compute(start, end time.Time, table models.TimeTable) Summary {
	s := Summary{
		Start: utils.DateOf(start),
		End:   utils.DateOf(end),
		Days:  utils.DaysInRange(start, end),
	}

	byCategory := make(map[string]int)
	byActivity := make(map[string]int)

	utils.EachDate(start, end, func(d time.Time) {
		date := utils.FormatDate(d)
		entry := Day{Date: date, Weekday: utils.WeekdayAbbrev(d)}

		if day, ok := table[date]; ok {
			if day.Weekday != "" {
				entry.Weekday = day.Weekday
			}
			for _, cell := range day.Hours {
				if cell.Activity == "" {
					continue
				}
				category := cell.Category
				if category == "" {
					category = constants.NoCategory
				}
				byCategory[category]++
				byActivity[cell.Activity]++
				entry.Hours++
			}
		}

		entry.Duration = time.Duration(entry.Hours) * time.Hour
		s.Hours += entry.Hours
		s.PerDay = append(s.PerDay, entry)
	})

	s.Duration = time.Duration(s.Hours) * time.Hour
	s.Categories = buckets(byCategory, s.Hours)
	s.Activities = buckets(byActivity, s.Hours)
	return s
}

func buckets(counts map[string]int, total int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for name, hours := range counts {
		b := Bucket{
			Name:     name,
			Hours:    hours,
			Duration: time.Duration(hours) * time.Hour,
		}
		if total > 0 {
			b.Share = float64(hours) / float64(total)
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HumanDuration renders whole hours as "1 hr" or "5 hrs".
func HumanDuration(d time.Duration) string {
	h := int(d / time.Hour)
	if h == 1 {
		return "1 hr"
	}
	return fmt.Sprintf("%d hrs", h)
}

// Percent renders a share as a whole percentage.
func Percent(share float64) string {
	return fmt.Sprintf("%.0f%%", share*100)
}

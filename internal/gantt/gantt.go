// Package gantt coalesces tagged hours into activity intervals and renders them as a
// mermaid gantt block.
package gantt

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

// Interval is a run of consecutive hours tagged with one activity. End is the start of
// the last hour in the run, so a one-hour interval has Start == End.
type Interval struct {
	Name     string
	Category string
	Start    time.Time
	End      time.Time
}

// Hours is the inclusive length of the interval in whole hours.
func (iv Interval) Hours() int {
	return int(iv.End.Sub(iv.Start).Hours()) + 1
}

// Section groups the intervals of one category in creation order.
type Section struct {
	Category  string
	Intervals []Interval
}

// Mode selects which existing interval a tagged hour may extend.
type Mode int

const (
	// FirstMatch looks only at the first interval with the same name in the category.
	// Once an activity recurs after a gap, later runs of it are never extended and
	// every further hour becomes its own interval.
	FirstMatch Mode = iota
	// LatestMatch extends the most recent interval with the same name.
	LatestMatch
)

// Merge scans [start, end] and returns one Section per category in first-seen order.
// Hours without an activity are skipped; an empty category becomes "no category".
func Merge(start, end time.Time, table models.TimeTable, mode Mode) []Section {
	var sections []Section
	index := make(map[string]int)

	utils.EachDate(start, end, func(d time.Time) {
		day, ok := table[utils.FormatDate(d)]
		if !ok {
			return
		}
		for hour, cell := range day.Hours {
			if cell.Activity == "" {
				continue
			}

			category := cell.Category
			if category == "" {
				category = constants.NoCategory
			}
			i, seen := index[category]
			if !seen {
				i = len(sections)
				index[category] = i
				sections = append(sections, Section{Category: category})
			}

			ts := d.Add(time.Duration(hour) * time.Hour)
			sections[i].add(cell.Activity, ts, mode)
		}
	})

	return sections
}

func (s *Section) add(name string, ts time.Time, mode Mode) {
	if j := s.find(name, mode); j >= 0 {
		if iv := &s.Intervals[j]; ts.Equal(iv.End.Add(time.Hour)) {
			iv.End = ts
			return
		}
	}
	s.Intervals = append(s.Intervals, Interval{
		Name:     name,
		Category: s.Category,
		Start:    ts,
		End:      ts,
	})
}

func (s *Section) find(name string, mode Mode) int {
	if mode == LatestMatch {
		for j := len(s.Intervals) - 1; j >= 0; j-- {
			if s.Intervals[j].Name == name {
				return j
			}
		}
		return -1
	}
	for j, iv := range s.Intervals {
		if iv.Name == name {
			return j
		}
	}
	return -1
}

// Build renders the first-match merge of [start, end] as a fenced mermaid block. The
// block ends with the closing fence and no trailing newline.
func Build(start, end time.Time, table models.TimeTable) string {
	return Render(start, end, Merge(start, end, table, FirstMatch))
}

// BuildRange validates YYYY-MM-DD boundaries the same way CSV export does, then
// builds the block with the given mode.
func BuildRange(start, end string, table models.TimeTable, mode Mode) (string, error) {
	from, to, err := utils.ParseRange(start, end)
	if err != nil {
		return "", err
	}
	return Render(from, to, Merge(from, to, table, mode)), nil
}

// Render writes sections as a mermaid gantt block.
func Render(start, end time.Time, sections []Section) string {
	var b strings.Builder
	b.WriteString("```mermaid\ngantt\n")
	fmt.Fprintf(&b, "    title Time Table Gantt Chart (%s to %s)\n", utils.FormatDate(start), utils.FormatDate(end))
	b.WriteString("    dateFormat YYYY-MM-DDTHH:mm\n")
	b.WriteString("    axisFormat %m-%d %H:%M\n")

	for _, s := range sections {
		fmt.Fprintf(&b, "    section %s\n", s.Category)
		for i, iv := range s.Intervals {
			fmt.Fprintf(&b, "    %s :%s_%d, %s, %dh\n",
				strings.ReplaceAll(iv.Name, " ", "_"),
				s.Category,
				i+1,
				iv.Start.Format(constants.HourStampFormat),
				iv.Hours(),
			)
		}
	}

	b.WriteString("```")
	return b.String()
}

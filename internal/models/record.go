package models

import (
	"sort"

	"github.com/julianstephens/hourlog/internal/constants"
)

// HourRecord is one hour cell: a background color, an activity label and an optional category.
type HourRecord struct {
	Color    string `json:"color"`
	Activity string `json:"activity"`
	Category string `json:"category,omitempty"`
}

// IsDefault reports whether the cell still holds the untouched default values.
func (h HourRecord) IsDefault() bool {
	return h == DefaultHour()
}

// DayRecord holds the 24 hour cells of one calendar date.
// Hours[i] covers the interval [i:00, i+1:00).
type DayRecord struct {
	Date    string                            `json:"date"`    // YYYY-MM-DD format
	Weekday string                            `json:"weekday"` // Sun..Sat
	Hours   [constants.HoursPerDay]HourRecord `json:"hours"`
}

// TimeTable maps ISO dates to their day records. Keys always equal the record's Date.
type TimeTable map[string]DayRecord

// DefaultHour returns a blank white cell.
func DefaultHour() HourRecord {
	return HourRecord{Color: constants.DefaultCellColor}
}

// DefaultHours returns 24 independent blank cells.
func DefaultHours() [constants.HoursPerDay]HourRecord {
	var hours [constants.HoursPerDay]HourRecord
	for i := range hours {
		hours[i] = DefaultHour()
	}
	return hours
}

// NewDayRecord builds a day record with every hour defaulted.
func NewDayRecord(date, weekday string) DayRecord {
	return DayRecord{
		Date:    date,
		Weekday: weekday,
		Hours:   DefaultHours(),
	}
}

// Dates returns the table keys in ascending date order.
func (t TimeTable) Dates() []string {
	dates := make([]string, 0, len(t))
	for date := range t {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Clone returns a copy of the table. Day records are values, so the copy shares nothing.
func (t TimeTable) Clone() TimeTable {
	out := make(TimeTable, len(t))
	for date, day := range t {
		out[date] = day
	}
	return out
}

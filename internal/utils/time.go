package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// DateOf returns the calendar date of t (read in t's own location) as midnight UTC.
// All day arithmetic runs on these values so DST shifts never skip or repeat a day.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, strings.TrimSpace(dateStr))
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// WeekdayAbbrev returns the three-letter weekday stored on day records.
func WeekdayAbbrev(t time.Time) string {
	return constants.Weekdays[t.Weekday()]
}

// ParseRange parses inclusive start and end dates. It fails with ErrInvalidDateRange
// when either boundary does not parse and with ErrInvertedRange when start is after end.
func ParseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrInvalidDateRange,
			"invalid start date %q, please use YYYY-MM-DD", startStr)
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrInvalidDateRange,
			"invalid end date %q, please use YYYY-MM-DD", endStr)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.New(apperrors.ErrInvertedRange,
			"start date %s must not be after end date %s", FormatDate(start), FormatDate(end))
	}
	return start, end, nil
}

// EachDate calls fn for every calendar day from start to end inclusive.
func EachDate(start, end time.Time, fn func(d time.Time)) {
	start, end = DateOf(start), DateOf(end)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// DaysInRange returns the number of calendar days from start to end inclusive,
// or 0 when start is after end.
func DaysInRange(start, end time.Time) int {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

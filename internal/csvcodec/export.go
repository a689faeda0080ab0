package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

// Export renders the dates of [start, end] present in table as plain-dialect CSV
// prefixed with a UTF-8 byte order mark. Boundaries are YYYY-MM-DD strings.
func Export(start, end string, table models.TimeTable) (string, error) {
	return ExportDialect(start, end, table, constants.CSVDialectPlain)
}

// ExportDialect is Export with an explicit dialect.
func ExportDialect(start, end string, table models.TimeTable, dialect constants.CSVDialect) (string, error) {
	from, to, err := utils.ParseRange(start, end)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := Write(&b, from, to, table, dialect); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write streams the CSV for [start, end] to w, BOM first. Dates absent from table
// produce no rows.
func Write(w io.Writer, start, end time.Time, table models.TimeTable, dialect constants.CSVDialect) error {
	if _, err := io.WriteString(w, constants.CSVBOM); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	switch dialect {
	case constants.CSVDialectPlain, "":
		return writePlain(w, start, end, table)
	case constants.CSVDialectQuoted:
		return writeQuoted(w, start, end, table)
	default:
		return fmt.Errorf("unknown CSV dialect %q", dialect)
	}
}

// FileName returns the conventional export file name for a range.
func FileName(start, end string) string {
	return fmt.Sprintf("%s_%s_to_%s.csv", constants.AppName, start, end)
}

func writePlain(w io.Writer, start, end time.Time, table models.TimeTable) error {
	var werr error
	write := func(s string) {
		if werr == nil {
			_, werr = io.WriteString(w, s)
		}
	}

	write(constants.CSVHeader + "\n")
	eachRow(start, end, table, func(row []string) {
		write(strings.Join(row, ",") + "\n")
	})

	if werr != nil {
		return fmt.Errorf("failed to write CSV: %w", werr)
	}
	return nil
}

func writeQuoted(w io.Writer, start, end time.Time, table models.TimeTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(constants.CSVColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	var werr error
	eachRow(start, end, table, func(row []string) {
		if werr == nil {
			werr = cw.Write(row)
		}
	})
	cw.Flush()

	if werr == nil {
		werr = cw.Error()
	}
	if werr != nil {
		return fmt.Errorf("failed to write CSV: %w", werr)
	}
	return nil
}

// eachRow yields one row per (date, hour) for dates in range that exist in table.
func eachRow(start, end time.Time, table models.TimeTable, fn func(row []string)) {
	utils.EachDate(start, end, func(d time.Time) {
		date := utils.FormatDate(d)
		day, ok := table[date]
		if !ok {
			return
		}
		for hour, cell := range day.Hours {
			fn([]string{
				date,
				day.Weekday,
				strconv.Itoa(hour) + ":00",
				cell.Color,
				cell.Activity,
				cell.Category,
			})
		}
	})
}

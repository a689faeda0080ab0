package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
)

// Result reports what an import touched. Categories and Colors are the distinct
// non-empty values seen, sorted.
type Result struct {
	Rows       int
	Categories []string
	Colors     []string
}

// Import merges plain-dialect CSV text into table in place.
//
// Every (date, hour) row overwrites that cell; all other cells and dates are left as
// they were. Import stops at the first bad line and returns the partial Result:
// rows before that line have already been written into table.
func Import(text string, table models.TimeTable) (Result, error) {
	return ImportDialect(text, table, constants.CSVDialectPlain)
}

// ImportDialect is Import with an explicit dialect.
func ImportDialect(text string, table models.TimeTable, dialect constants.CSVDialect) (Result, error) {
	text = strings.TrimPrefix(text, constants.CSVBOM)

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return Result{}, apperrors.New(apperrors.ErrEmptyInput, "CSV file is empty or has no data rows")
	}
	if !validHeader(strings.TrimSuffix(lines[0], "\r")) {
		return Result{}, apperrors.AtLine(apperrors.ErrSchemaMismatch, 1,
			"the CSV file must have the columns: %s", strings.Join(constants.CSVColumns, ", "))
	}

	m := newMerger(table)
	var err error
	switch dialect {
	case constants.CSVDialectPlain, "":
		err = m.plain(lines[1:])
	case constants.CSVDialectQuoted:
		err = m.quoted(text)
	default:
		err = fmt.Errorf("unknown CSV dialect %q", dialect)
	}
	return m.result(), err
}

func validHeader(line string) bool {
	tokens := strings.Split(line, ",")
	if len(tokens) != len(constants.CSVColumns) {
		return false
	}
	for i, col := range constants.CSVColumns {
		if tokens[i] != col {
			return false
		}
	}
	return true
}

type merger struct {
	table      models.TimeTable
	rows       int
	categories map[string]struct{}
	colors     map[string]struct{}
}

func newMerger(table models.TimeTable) *merger {
	return &merger{
		table:      table,
		categories: make(map[string]struct{}),
		colors:     make(map[string]struct{}),
	}
}

// plain handles data lines; lines[0] is file line 2.
func (m *merger) plain(lines []string) error {
	for i, raw := range lines {
		lineNo := i + 2
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if err := m.apply(lineNo, fields); err != nil {
			return err
		}
	}
	return nil
}

func (m *merger) quoted(text string) error {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	// header was validated already
	if _, err := r.Read(); err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("malformed CSV: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		lineNo, _ := r.FieldPos(0)
		if err := m.apply(lineNo, rec); err != nil {
			return err
		}
	}
}

func (m *merger) apply(lineNo int, fields []string) error {
	if len(fields) != len(constants.CSVColumns) {
		return apperrors.AtLine(apperrors.ErrRowArityMismatch, lineNo,
			"invalid data format in line %d, expected %d columns, found %d", lineNo, len(constants.CSVColumns), len(fields))
	}

	date, weekday, hourText, color, activity, category := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	hour, ok := parseHour(hourText)
	if !ok {
		return apperrors.AtLine(apperrors.ErrInvalidHour, lineNo,
			"invalid hour value in line %d: %s, hour must be between 0:00 and 23:00", lineNo, hourText)
	}

	if category != "" {
		m.categories[category] = struct{}{}
	}
	if color != "" {
		m.colors[color] = struct{}{}
	}

	day, exists := m.table[date]
	if !exists {
		day = models.NewDayRecord(date, weekday)
	}
	day.Hours[hour] = models.HourRecord{
		Color:    color,
		Activity: activity,
		Category: category,
	}
	m.table[date] = day
	m.rows++
	return nil
}

// parseHour reads the integer before the first colon.
func parseHour(s string) (int, bool) {
	before, _, _ := strings.Cut(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(before))
	if err != nil || hour < 0 || hour >= constants.HoursPerDay {
		return 0, false
	}
	return hour, true
}

func (m *merger) result() Result {
	return Result{
		Rows:       m.rows,
		Categories: sortedKeys(m.categories),
		Colors:     sortedKeys(m.colors),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package csvcodec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
)

const header = "Date,Weekday,Hour,Color,Activity,Category\n"

func TestImport_NewDate(t *testing.T) {
	table := models.TimeTable{}

	res, err := Import(header+"2025-01-01,Wed,9:00,#ff0000,Write,Work", table)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	day, ok := table["2025-01-01"]
	if !ok {
		t.Fatal("expected 2025-01-01 to be created")
	}
	if day.Weekday != "Wed" {
		t.Errorf("expected weekday Wed, got %q", day.Weekday)
	}
	for hour, cell := range day.Hours {
		if hour == 9 {
			want := models.HourRecord{Color: "#ff0000", Activity: "Write", Category: "Work"}
			if cell != want {
				t.Errorf("hour 9: expected %+v, got %+v", want, cell)
			}
			continue
		}
		if !cell.IsDefault() {
			t.Errorf("hour %d: expected default cell, got %+v", hour, cell)
		}
	}

	if !reflect.DeepEqual(res.Categories, []string{"Work"}) {
		t.Errorf("unexpected categories %v", res.Categories)
	}
	if !reflect.DeepEqual(res.Colors, []string{"#ff0000"}) {
		t.Errorf("unexpected colors %v", res.Colors)
	}
	if res.Rows != 1 {
		t.Errorf("expected 1 row, got %d", res.Rows)
	}
}

func TestImport_MergesIntoExistingDay(t *testing.T) {
	existing := models.NewDayRecord("2025-01-01", "Wed")
	existing.Hours[8] = models.HourRecord{Color: "#0000ff", Activity: "Gym", Category: "Health"}
	table := models.TimeTable{"2025-01-01": existing}

	if _, err := Import(header+"2025-01-01,Wed,9:00,#ff0000,Write,Work\n", table); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	day := table["2025-01-01"]
	if day.Hours[8].Activity != "Gym" {
		t.Errorf("expected untouched hour 8, got %+v", day.Hours[8])
	}
	if day.Hours[9].Activity != "Write" {
		t.Errorf("expected hour 9 overwritten, got %+v", day.Hours[9])
	}
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     error
		wantLine int
	}{
		{"empty", "", apperrors.ErrEmptyInput, 0},
		{"header only", "Date,Weekday,Hour,Color,Activity,Category", apperrors.ErrEmptyInput, 0},
		{"missing column", "Date,Weekday,Hour,Color,Activity\n2025-01-01,Wed,9:00,#ff0000,Write", apperrors.ErrSchemaMismatch, 1},
		{"reordered columns", "Weekday,Date,Hour,Color,Activity,Category\nWed,2025-01-01,9:00,#fff,a,b", apperrors.ErrSchemaMismatch, 1},
		{"too few fields", header + "2025-01-01,Wed,9:00,#ff0000,Write", apperrors.ErrRowArityMismatch, 2},
		{"comma in activity", header + "2025-01-01,Wed,9:00,#ff0000,Read, nap,Home", apperrors.ErrRowArityMismatch, 2},
		{"hour too large", header + "2025-01-02,Thu,25:00,#ff0000,Write,Work", apperrors.ErrInvalidHour, 2},
		{"hour negative", header + "2025-01-02,Thu,-1:00,#ff0000,Write,Work", apperrors.ErrInvalidHour, 2},
		{"hour text", header + "2025-01-02,Thu,noon,#ff0000,Write,Work", apperrors.ErrInvalidHour, 2},
		{"later line", header + "2025-01-01,Wed,9:00,#ff0000,Write,Work\n\n2025-01-01,Wed,x,#ff0000,Write,Work", apperrors.ErrInvalidHour, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(tt.input, models.TimeTable{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := apperrors.LineOf(err); got != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, got)
			}
		})
	}
}

func TestImport_SchemaMismatchLeavesTableUntouched(t *testing.T) {
	table := models.TimeTable{"2025-01-01": models.NewDayRecord("2025-01-01", "Wed")}
	before := table.Clone()

	_, err := Import("Date,Weekday,Hour,Color,Activity\n2025-01-01,Wed,9:00,#ff0000,Write", table)
	if !errors.Is(err, apperrors.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
	if !reflect.DeepEqual(table, before) {
		t.Error("table was modified by a rejected import")
	}
}

func TestImport_InvalidHourMessage(t *testing.T) {
	table := models.TimeTable{}
	_, err := Import(header+"2025-01-02,Thu,25:00,#ff0000,Write,Work", table)

	var e *apperrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Line != 2 {
		t.Errorf("expected line 2, got %d", e.Line)
	}
	if want := "invalid hour value in line 2: 25:00, hour must be between 0:00 and 23:00"; e.Msg != want {
		t.Errorf("unexpected message %q", e.Msg)
	}
	if _, ok := table["2025-01-02"]; ok {
		t.Error("rejected row should not create its day")
	}
}

func TestImport_KeepsEarlierRowsOnError(t *testing.T) {
	table := models.TimeTable{}
	res, err := Import(header+
		"2025-01-01,Wed,9:00,#ff0000,Write,Work\n"+
		"2025-01-01,Wed,99:00,#ff0000,Write,Work\n", table)
	if !errors.Is(err, apperrors.ErrInvalidHour) {
		t.Fatalf("expected invalid hour, got %v", err)
	}
	if res.Rows != 1 {
		t.Errorf("expected 1 applied row, got %d", res.Rows)
	}
	if table["2025-01-01"].Hours[9].Activity != "Write" {
		t.Error("expected the first row to stay applied")
	}
}

func TestImport_SetsAreDedupedAndSorted(t *testing.T) {
	input := header +
		"2025-01-01,Wed,9:00,#ff0000,Write,Work\n" +
		"2025-01-01,Wed,10:00,#00ff00,Walk,Health\n" +
		"2025-01-01,Wed,11:00,#ff0000,Write,Work\n" +
		"2025-01-01,Wed,12:00,,Lunch,\n"

	res, err := Import(input, models.TimeTable{})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !reflect.DeepEqual(res.Categories, []string{"Health", "Work"}) {
		t.Errorf("unexpected categories %v", res.Categories)
	}
	if !reflect.DeepEqual(res.Colors, []string{"#00ff00", "#ff0000"}) {
		t.Errorf("unexpected colors %v", res.Colors)
	}
}

func TestImport_HourParsing(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"0:00", 0},
		{"9:00", 9},
		{"09:30", 9},
		{"23", 23},
		{" 7 :00", 7},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseHour(tt.raw)
			if !ok || got != tt.want {
				t.Errorf("parseHour(%q) = %d, %v; want %d", tt.raw, got, ok, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	original := models.TimeTable{}
	for _, d := range []struct{ date, weekday string }{{"2025-03-08", "Sat"}, {"2025-03-09", "Sun"}} {
		day := models.NewDayRecord(d.date, d.weekday)
		day.Hours[0] = models.HourRecord{Color: "#112233", Activity: "Sleep", Category: "Rest"}
		day.Hours[13] = models.HourRecord{Color: "#abcdef", Activity: "Code"}
		original[d.date] = day
	}

	for _, dialect := range []constants.CSVDialect{constants.CSVDialectPlain, constants.CSVDialectQuoted} {
		t.Run(string(dialect), func(t *testing.T) {
			out, err := ExportDialect("2025-03-08", "2025-03-09", original, dialect)
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}

			restored := models.TimeTable{}
			if _, err := ImportDialect(out, restored, dialect); err != nil {
				t.Fatalf("import of exported file failed: %v", err)
			}
			if !reflect.DeepEqual(restored, original) {
				t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", original, restored)
			}
		})
	}
}

func TestImport_QuotedDialectAllowsCommas(t *testing.T) {
	table := models.TimeTable{}
	input := header + `2025-01-01,Wed,10:00,#00ff00,"Read, then nap",Home` + "\r\n"

	if _, err := ImportDialect(input, table, constants.CSVDialectQuoted); err != nil {
		t.Fatalf("ImportDialect failed: %v", err)
	}
	if got := table["2025-01-01"].Hours[10].Activity; got != "Read, then nap" {
		t.Errorf("unexpected activity %q", got)
	}
}

func TestImport_QuotedDialectArity(t *testing.T) {
	input := header + "2025-01-01,Wed,10:00,#00ff00,Read\n"
	_, err := ImportDialect(input, models.TimeTable{}, constants.CSVDialectQuoted)
	if !errors.Is(err, apperrors.ErrRowArityMismatch) {
		t.Fatalf("expected arity mismatch, got %v", err)
	}
	if apperrors.LineOf(err) != 2 {
		t.Errorf("expected line 2, got %d", apperrors.LineOf(err))
	}
}

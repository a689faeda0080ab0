package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/hourlog/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func buildTable() models.TimeTable {
	mon := models.NewDayRecord("2025-01-06", "Mon")
	for h := 9; h < 12; h++ {
		mon.Hours[h] = models.HourRecord{Color: "#ff0000", Activity: "Write", Category: "Work"}
	}
	mon.Hours[18] = models.HourRecord{Color: "#00ff00", Activity: "Walk"}

	tue := models.NewDayRecord("2025-01-07", "Tue")
	tue.Hours[9] = models.HourRecord{Color: "#0000ff", Activity: "Review", Category: "Work"}

	out := models.NewDayRecord("2025-02-01", "Sat")
	out.Hours[9] = models.HourRecord{Activity: "Ignored", Category: "Work"}

	return models.TimeTable{
		"2025-01-06": mon,
		"2025-01-07": tue,
		"2025-02-01": out,
	}
}

func TestCompute_Totals(t *testing.T) {
	s := Compute(date("2025-01-05"), date("2025-01-11"), buildTable())

	if s.Days != 7 {
		t.Errorf("expected 7 days, got %d", s.Days)
	}
	if s.Hours != 5 {
		t.Errorf("expected 5 tagged hours, got %d", s.Hours)
	}
	if s.Duration != 5*time.Hour {
		t.Errorf("expected 5h, got %v", s.Duration)
	}
}

func TestCompute_Categories(t *testing.T) {
	s := Compute(date("2025-01-05"), date("2025-01-11"), buildTable())

	if len(s.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", s.Categories)
	}
	if s.Categories[0].Name != "Work" || s.Categories[0].Hours != 4 {
		t.Errorf("unexpected first category %+v", s.Categories[0])
	}
	if s.Categories[1].Name != "no category" || s.Categories[1].Hours != 1 {
		t.Errorf("unexpected second category %+v", s.Categories[1])
	}
	if s.Categories[0].Share != 0.8 {
		t.Errorf("expected share 0.8, got %f", s.Categories[0].Share)
	}
}

func TestCompute_ActivitiesTieBreakByName(t *testing.T) {
	s := Compute(date("2025-01-05"), date("2025-01-11"), buildTable())

	var names []string
	for _, b := range s.Activities {
		names = append(names, b.Name)
	}
	want := []string{"Write", "Review", "Walk"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestCompute_PerDay(t *testing.T) {
	s := Compute(date("2025-01-05"), date("2025-01-07"), buildTable())

	if len(s.PerDay) != 3 {
		t.Fatalf("expected 3 days, got %d", len(s.PerDay))
	}
	tests := []struct {
		date    string
		weekday string
		hours   int
	}{
		{"2025-01-05", "Sun", 0},
		{"2025-01-06", "Mon", 4},
		{"2025-01-07", "Tue", 1},
	}
	for i, tt := range tests {
		got := s.PerDay[i]
		if got.Date != tt.date || got.Weekday != tt.weekday || got.Hours != tt.hours {
			t.Errorf("day %d: expected %+v, got %+v", i, tt, got)
		}
	}
}

func TestCompute_EmptyRange(t *testing.T) {
	s := Compute(date("2025-01-05"), date("2025-01-05"), models.TimeTable{})
	if s.Hours != 0 || len(s.Categories) != 0 || len(s.Activities) != 0 {
		t.Errorf("expected an empty summary, got %+v", s)
	}
	if len(s.PerDay) != 1 {
		t.Errorf("expected one zero day, got %d", len(s.PerDay))
	}
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0 hrs"},
		{time.Hour, "1 hr"},
		{26 * time.Hour, "26 hrs"},
	}
	for _, tt := range tests {
		if got := HumanDuration(tt.in); got != tt.want {
			t.Errorf("HumanDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.8); got != "80%" {
		t.Errorf("expected 80%%, got %s", got)
	}
}

package postgres

import (
	"fmt"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
)

type dayRow struct {
	Date    string `db:"date"`
	Weekday string `db:"weekday"`
}

type hourRow struct {
	Date     string `db:"date"`
	Hour     int    `db:"hour"`
	Color    string `db:"color"`
	Activity string `db:"activity"`
	Category string `db:"category"`
}

func (s *Store) LoadTable() (models.TimeTable, error) {
	if s.db == nil {
		return nil, errNoConnection
	}
	var days []dayRow
	if err := s.db.Select(&days, "SELECT to_char(date, 'YYYY-MM-DD') AS date, weekday FROM days"); err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}

	var hours []hourRow
	if err := s.db.Select(&hours, `
		SELECT to_char(date, 'YYYY-MM-DD') AS date, hour, color, activity, category
		FROM hours
	`); err != nil {
		return nil, fmt.Errorf("failed to query hours: %w", err)
	}

	table := make(models.TimeTable, len(days))
	for _, d := range days {
		table[d.Date] = models.NewDayRecord(d.Date, d.Weekday)
	}
	for _, h := range hours {
		day, ok := table[h.Date]
		if !ok || h.Hour < 0 || h.Hour >= constants.HoursPerDay {
			continue
		}
		day.Hours[h.Hour] = models.HourRecord{Color: h.Color, Activity: h.Activity, Category: h.Category}
		table[h.Date] = day
	}
	return table, nil
}

// SaveTable replaces every stored day in one transaction, writing only non-default
// cells.
func (s *Store) SaveTable(table models.TimeTable) error {
	if s.db == nil {
		return errNoConnection
	}
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM hours"); err != nil {
		return fmt.Errorf("failed to clear hours: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM days"); err != nil {
		return fmt.Errorf("failed to clear days: %w", err)
	}

	dayStmt, err := tx.PrepareNamed("INSERT INTO days (date, weekday) VALUES (:date, :weekday)")
	if err != nil {
		return err
	}
	defer dayStmt.Close()

	hourStmt, err := tx.PrepareNamed(`
		INSERT INTO hours (date, hour, color, activity, category)
		VALUES (:date, :hour, :color, :activity, :category)
	`)
	if err != nil {
		return err
	}
	defer hourStmt.Close()

	for _, date := range table.Dates() {
		day := table[date]
		if _, err := dayStmt.Exec(dayRow{Date: date, Weekday: day.Weekday}); err != nil {
			return fmt.Errorf("failed to save day %s: %w", date, err)
		}
		for hour, rec := range day.Hours {
			if rec.IsDefault() {
				continue
			}
			row := hourRow{Date: date, Hour: hour, Color: rec.Color, Activity: rec.Activity, Category: rec.Category}
			if _, err := hourStmt.Exec(row); err != nil {
				return fmt.Errorf("failed to save %s %d:00: %w", date, hour, err)
			}
		}
	}

	return tx.Commit()
}

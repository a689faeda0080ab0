package sqlite

import (
	"fmt"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
)

func (s *Store) LoadTable() (models.TimeTable, error) {
	if s.db == nil {
		return nil, errNoConnection
	}
	table := models.TimeTable{}

	days, err := s.db.Query("SELECT date, weekday FROM days")
	if err != nil {
		return nil, fmt.Errorf("failed to query days: %w", err)
	}
	defer days.Close()

	for days.Next() {
		var date, weekday string
		if err := days.Scan(&date, &weekday); err != nil {
			return nil, err
		}
		table[date] = models.NewDayRecord(date, weekday)
	}
	if err := days.Err(); err != nil {
		return nil, err
	}

	hours, err := s.db.Query("SELECT date, hour, color, activity, category FROM hours")
	if err != nil {
		return nil, fmt.Errorf("failed to query hours: %w", err)
	}
	defer hours.Close()

	for hours.Next() {
		var (
			date string
			hour int
			rec  models.HourRecord
		)
		if err := hours.Scan(&date, &hour, &rec.Color, &rec.Activity, &rec.Category); err != nil {
			return nil, err
		}
		day, ok := table[date]
		if !ok || hour < 0 || hour >= constants.HoursPerDay {
			continue
		}
		day.Hours[hour] = rec
		table[date] = day
	}
	if err := hours.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

// SaveTable replaces every stored day in one transaction. Default cells are not
// written; LoadTable fills them back in.
func (s *Store) SaveTable(table models.TimeTable) error {
	if s.db == nil {
		return errNoConnection
	}
	tx, err := s.db.Begin()
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

	dayStmt, err := tx.Prepare("INSERT INTO days (date, weekday) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer dayStmt.Close()

	hourStmt, err := tx.Prepare("INSERT INTO hours (date, hour, color, activity, category) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer hourStmt.Close()

	for _, date := range table.Dates() {
		day := table[date]
		if _, err := dayStmt.Exec(date, day.Weekday); err != nil {
			return fmt.Errorf("failed to save day %s: %w", date, err)
		}
		for hour, rec := range day.Hours {
			if rec.IsDefault() {
				continue
			}
			if _, err := hourStmt.Exec(date, hour, rec.Color, rec.Activity, rec.Category); err != nil {
				return fmt.Errorf("failed to save %s %d:00: %w", date, hour, err)
			}
		}
	}

	return tx.Commit()
}

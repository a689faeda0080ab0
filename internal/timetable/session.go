package timetable

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/utils"
)

// Store is the persistence the session needs. storage.Provider satisfies it.
type Store interface {
	LoadTable() (models.TimeTable, error)
	SaveTable(models.TimeTable) error
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// Session owns one time table and its settings for the lifetime of a command.
// It is not safe for concurrent use.
type Session struct {
	ID       string
	Table    models.TimeTable
	Settings models.Settings

	store    Store
	now      func() time.Time
	timezone string
}

// Option configures a session at Open.
type Option func(*Session)

// WithTimezone makes Today use tz instead of the stored Timezone setting. The stored
// setting is not changed. An empty tz is ignored.
func WithTimezone(tz string) Option {
	return func(s *Session) {
		s.timezone = tz
	}
}

// Open loads the table and settings from store. An empty store is seeded with the
// current week.
func Open(store Store, opts ...Option) (*Session, error) {
	return open(store, time.Now, opts...)
}

func open(store Store, now func() time.Time, opts ...Option) (*Session, error) {
	table, err := store.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load time table: %w", err)
	}
	settings, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	if table == nil {
		table = models.TimeTable{}
	}

	s := &Session{
		ID:       uuid.NewString(),
		Table:    table,
		Settings: settings,
		store:    store,
		now:      now,
	}
	for _, opt := range opts {
		opt(s)
	}
	logger.Debug("Session opened", "session", s.ID, "days", len(table))

	if len(s.Table) == 0 {
		today, err := s.Today()
		if err != nil {
			return nil, err
		}
		if _, err := s.Generate(constants.RangeWeek, today); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Today returns the current calendar date in the session timezone: the WithTimezone
// override when given, the stored setting otherwise.
func (s *Session) Today() (time.Time, error) {
	tz := s.Settings.Timezone
	if s.timezone != "" {
		tz = s.timezone
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return utils.DateOf(s.now().In(loc)), nil
}

// Persist saves table wholesale. It matches PersistFunc.
func (s *Session) Persist(table models.TimeTable) error {
	if err := s.store.SaveTable(table); err != nil {
		return fmt.Errorf("failed to save time table: %w", err)
	}
	logger.Debug("Time table saved", "session", s.ID, "days", len(table))
	return nil
}

// Save persists the session's table.
func (s *Session) Save() error {
	return s.Persist(s.Table)
}

// SaveSettings persists the session's settings.
func (s *Session) SaveSettings() error {
	if err := s.store.SaveSettings(s.Settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Generate fills the range around ref into the session table and persists the whole
// table. Days outside the range stay in the session; only the returned window is limited
// to the range.
func (s *Session) Generate(kind constants.RangeKind, ref time.Time) (models.TimeTable, error) {
	merge := func(window models.TimeTable) error {
		for date, day := range window {
			s.Table[date] = day
		}
		return s.Save()
	}
	return Generate(s.Table, Range{Kind: kind, Reference: ref}, merge)
}

// View returns the range around ref without touching the session table.
// Dates missing from the table come back as defaults.
func (s *Session) View(kind constants.RangeKind, ref time.Time) (models.TimeTable, error) {
	return Generate(s.Table, Range{Kind: kind, Reference: ref}, nil)
}

// SetCell overwrites one hour cell, creating the day when it is missing, and records
// the cell's color and category in the preset lists.
func (s *Session) SetCell(date time.Time, hour int, rec models.HourRecord) error {
	if hour < 0 || hour >= constants.HoursPerDay {
		return fmt.Errorf("hour %d out of range 0-23", hour)
	}
	key := utils.FormatDate(date)
	day, ok := s.Table[key]
	if !ok {
		day = models.NewDayRecord(key, utils.WeekdayAbbrev(date))
	}
	day.Hours[hour] = rec
	s.Table[key] = day

	s.Settings.AddColorPresets(rec.Color)
	s.Settings.AddCategories(rec.Category)
	return nil
}

// Clear removes every preset, category and day record and persists the empty state.
func (s *Session) Clear() error {
	s.Table = models.TimeTable{}
	s.Settings.ColorPresets = []string{}
	s.Settings.ActivityCategories = []string{}
	if err := s.SaveSettings(); err != nil {
		return err
	}
	return s.Save()
}

package storage

import "github.com/julianstephens/hourlog/internal/models"

// Provider persists one time table and its settings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Time table. SaveTable replaces the stored table wholesale.
	LoadTable() (models.TimeTable, error)
	SaveTable(models.TimeTable) error

	// Utils
	GetConfigPath() string
}

package constants

import "time"

const (
	AppName            = "hourlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/hourlog/hourlog.db"
	DefaultConfigFile  = "~/.config/hourlog/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// HourStampFormat identifies the start of one hour cell (YYYY-MM-DDTHH:00)
	HourStampFormat = "2006-01-02T15:04"

	// HoursPerDay is the fixed number of cells in a day record
	HoursPerDay = 24

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "hourlog-"

	// Watcher constants
	WatchDebounce   = time.Second
	WatchReadTries  = 100
	WatchReadPause  = 100 * time.Millisecond
	WatchLockSuffix = ".watch.lock"
	EnvDBConnection = "HOURLOG_DB_CONNECTION"
)

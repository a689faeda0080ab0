package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/cli/backups"
	"github.com/julianstephens/hourlog/internal/cli/data"
	"github.com/julianstephens/hourlog/internal/cli/reports"
	"github.com/julianstephens/hourlog/internal/cli/settings"
	"github.com/julianstephens/hourlog/internal/cli/system"
	"github.com/julianstephens/hourlog/internal/cli/table"
	"github.com/julianstephens/hourlog/internal/config"
	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/storage"
	"github.com/julianstephens/hourlog/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the YAML config file." placeholder:"FILE"`
	Store   string `help:"Store location: a .db (SQLite) or .json file, or a PostgreSQL connection string without a password. Passwords belong in the OS keyring or HOURLOG_DB_CONNECTION."`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init       system.InitCmd         `cmd:"" help:"Initialize hourlog storage."`
	Generate   table.GenerateCmd      `cmd:"" help:"Fill the week or month around a date with blank days."`
	Show       table.ShowCmd          `cmd:"" help:"Show the time table grid." default:"1"`
	Set        table.SetCmd           `cmd:"" help:"Edit one hour cell."`
	Clear      table.ClearCmd         `cmd:"" help:"Delete every day record, preset and category."`
	Export     data.ExportCmd         `cmd:"" help:"Export a date range as CSV."`
	Import     data.ImportCmd         `cmd:"" help:"Merge a CSV file into the time table."`
	Gantt      reports.GanttCmd       `cmd:"" help:"Print a mermaid Gantt chart for a date range."`
	Stats      reports.StatsCmd       `cmd:"" help:"Summarize tagged hours for a date range."`
	Presets    settings.PresetsCmd    `cmd:"" help:"Manage color presets."`
	Categories settings.CategoriesCmd `cmd:"" help:"Manage activity categories."`
	Settings   settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Backup     struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Doctor     system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate   system.ValidateCmd `cmd:"" help:"Check the time table and settings for problems."`
	DebugTools system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring    system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// commands that open or inspect the store themselves
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hour-by-hour time table: log what each hour went to, export it, chart it."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	conf, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	configDir, err := utils.ExpandPath(filepath.Dir(constants.DefaultConfigFile))
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug || conf.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	location := storage.ResolveLocation(CLI.Store, conf.Store, constants.DefaultConfigPath)
	store, err := storage.OpenLocation(location)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	command := strings.Fields(ctx.Command())[0]
	logger.Debug("Running command", "command", ctx.Command(), "store", store.GetConfigPath())

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: conf,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

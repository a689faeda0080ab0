package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/hourlog/internal/backup"
	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/storage/postgres"
	"github.com/julianstephens/hourlog/internal/utils"
	"github.com/julianstephens/hourlog/internal/validation"
)

// schemaStore is implemented by the SQL-backed stores.
type schemaStore interface {
	SchemaVersions() (current, latest int, err error)
	Ping() error
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	report := func(name string, err error) {
		if err != nil {
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.Printf("✓ %s: OK\n", name)
	}

	// Check 1: store reachable
	err := checkDBReachable(ctx)
	report("Database reachable", err)
	dbReachable = err == nil

	// Check 2/3: schema version and migrations
	if dbReachable {
		report("Schema version", checkSchemaVersion(ctx))
		report("Migrations complete", checkMigrationsComplete(ctx))
	} else {
		ctx.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
		ctx.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	// Check 5: data validation
	if dbReachable {
		warnings, err := checkValidation(ctx)
		report("Data validation", err)
		for _, w := range warnings {
			ctx.Printf("   ⚠ %s\n", w)
		}
	} else {
		ctx.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	// Check 6: clock/timezone
	report("Clock/timezone", checkClockTimezone(ctx, dbReachable))

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(schemaStore); ok {
		return s.Ping()
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	s, ok := ctx.Store.(schemaStore)
	if !ok {
		// JSON store doesn't have a schema version
		return nil
	}
	current, latest, err := s.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	s, ok := ctx.Store.(schemaStore)
	if !ok {
		return nil
	}
	current, latest, err := s.SchemaVersions()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkValidation fails on error-level conflicts and returns warnings separately.
func checkValidation(ctx *cli.Context) ([]string, error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	table, err := ctx.Store.LoadTable()
	if err != nil {
		return nil, fmt.Errorf("failed to load time table: %w", err)
	}

	v := validation.New()
	var conflicts []validation.Conflict
	for _, result := range []validation.ValidationResult{v.ValidateSettings(settings), v.ValidateTable(table, settings)} {
		conflicts = append(conflicts, result.Conflicts...)
	}

	var warnings []string
	errCount := 0
	for _, c := range conflicts {
		if c.Severity == validation.SeverityError {
			errCount++
			continue
		}
		warnings = append(warnings, c.Description)
	}
	if errCount > 0 {
		return warnings, fmt.Errorf("%d invalid record(s), run '%s validate' for details", errCount, constants.AppName)
	}
	return warnings, nil
}

func checkClockTimezone(ctx *cli.Context, dbReachable bool) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if ctx.Config != nil && ctx.Config.Timezone != "" {
		if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
			return fmt.Errorf("config timezone %q is invalid: %w", ctx.Config.Timezone, err)
		}
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		// store problems are reported by the earlier checks
		return nil
	}
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("stored timezone %q is invalid: %w", settings.Timezone, err)
	}
	return nil
}

package data

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/csvcodec"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/storage/postgres"
	"github.com/julianstephens/hourlog/internal/utils"
	"github.com/julianstephens/hourlog/internal/watcher"
)

type ImportCmd struct {
	File        string `arg:"" help:"CSV file to import." type:"existingfile"`
	Dialect     string `help:"CSV dialect (plain or quoted). Defaults to the config file value."`
	Watch       bool   `short:"w" help:"Keep running and re-import whenever the file is written."`
	KeepPartial bool   `help:"Save the rows merged before a failing line instead of discarding them."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	if !c.Watch {
		content, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.File, err)
		}
		return c.importContent(ctx, content)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(sigCtx, ctx)
}

// watch imports once, then again after every settled write until runCtx is done.
// Failed imports are reported and watching continues. Only one watcher per store
// may run at a time.
func (c *ImportCmd) watch(runCtx context.Context, ctx *cli.Context) error {
	lockPath, err := watchLockPath(ctx)
	if err != nil {
		return err
	}
	lock, err := watcher.AcquireLock(lockPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release watch lock", "path", lockPath, "error", err)
		}
	}()

	content, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	if err := c.importContent(ctx, content); err != nil {
		ctx.Printf("❌ %v\n", err)
	}

	ctx.Printf("Watching %s for changes (Ctrl+C to stop)...\n", c.File)
	return watcher.Watch(runCtx, c.File, func(content []byte) error {
		if err := c.importContent(ctx, content); err != nil {
			ctx.Printf("❌ %v\n", err)
			return err
		}
		return nil
	})
}

// importContent merges content into the session table and saves the table and
// the discovered categories and colors.
func (c *ImportCmd) importContent(ctx *cli.Context, content []byte) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	work := s.Table.Clone()
	res, importErr := csvcodec.ImportDialect(string(content), work, dialectFor(ctx, c.Dialect))
	if importErr != nil {
		logger.Warn("Import failed", "session", s.ID, "file", c.File, "line", apperrors.LineOf(importErr), "error", importErr)
		if !c.KeepPartial || res.Rows == 0 {
			return describeImportError(importErr)
		}
	}

	s.Table = work
	newCategories := s.Settings.AddCategories(res.Categories...)
	newColors := s.Settings.AddColorPresets(res.Colors...)
	if err := s.Save(); err != nil {
		return err
	}
	if err := s.SaveSettings(); err != nil {
		return err
	}

	ctx.Printf("✓ Imported %d rows from %s (%d new categories, %d new colors)\n", res.Rows, c.File, newCategories, newColors)
	if importErr != nil {
		return fmt.Errorf("kept %d rows; %w", res.Rows, describeImportError(importErr))
	}
	return nil
}

func describeImportError(err error) error {
	if line := apperrors.LineOf(err); line > 0 {
		return fmt.Errorf("import failed at line %d: %w", line, err)
	}
	return fmt.Errorf("import failed: %w", err)
}

// watchLockPath sits next to a file store; PostgreSQL stores share one in the config
// directory.
func watchLockPath(ctx *cli.Context) (string, error) {
	if _, ok := ctx.Store.(*postgres.Store); !ok {
		return ctx.Store.GetConfigPath() + constants.WatchLockSuffix, nil
	}
	dir, err := utils.ExpandPath(filepath.Dir(constants.DefaultConfigFile))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(dir, "postgres"+constants.WatchLockSuffix), nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hourlog/internal/backup"
	"github.com/julianstephens/hourlog/internal/config"
	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/storage"
	"github.com/julianstephens/hourlog/internal/storage/postgres"
	"github.com/julianstephens/hourlog/internal/timetable"
	"github.com/julianstephens/hourlog/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Out receives command output; nil means stdout.
	Out io.Writer
	// Confirm asks a yes/no question; nil means an interactive huh prompt.
	Confirm func(title, description string) (bool, error)

	session *timetable.Session
}

// Stdout returns the writer commands print to.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes formatted command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Ask runs the confirmation prompt.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}

// Session opens the time table session on first use and returns the same one after.
func (c *Context) Session() (*timetable.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	var opts []timetable.Option
	if c.Config != nil && c.Config.Timezone != "" {
		opts = append(opts, timetable.WithTimezone(c.Config.Timezone))
	}
	s, err := timetable.Open(c.Store, opts...)
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// ResetSession drops the cached session so the next call reloads from the store.
func (c *Context) ResetSession() {
	c.session = nil
}

// Dialect returns the configured CSV dialect, plain by default.
func (c *Context) Dialect() constants.CSVDialect {
	if c.Config == nil || c.Config.CSV == nil || c.Config.CSV.Dialect == "" {
		return constants.CSVDialectPlain
	}
	return c.Config.CSV.Dialect
}

// Today returns the current date, using the config file's timezone when it sets one
// and the stored timezone setting otherwise.
func (c *Context) Today() (time.Time, error) {
	if c.Config != nil && c.Config.Timezone != "" {
		now, err := utils.NowInTimezone(c.Config.Timezone)
		if err != nil {
			return time.Time{}, err
		}
		return utils.DateOf(now), nil
	}
	s, err := c.Session()
	if err != nil {
		return time.Time{}, err
	}
	return s.Today()
}

// ParseDate accepts YYYY-MM-DD, "today" or an empty string (also today).
func (c *Context) ParseDate(arg string) (time.Time, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.EqualFold(arg, "today") {
		return c.Today()
	}
	d, err := utils.ParseDate(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", arg)
	}
	return d, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// PostgreSQL stores are skipped; they are backed up by the server.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*postgres.Store); ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// DateArg turns "today" into a YYYY-MM-DD string and passes anything else through
// unchanged, so range validation can report it.
func (c *Context) DateArg(arg string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(arg), "today") {
		return arg, nil
	}
	d, err := c.Today()
	if err != nil {
		return "", err
	}
	return utils.FormatDate(d), nil
}

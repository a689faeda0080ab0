package data

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/csvcodec"
	"github.com/julianstephens/hourlog/internal/logger"
)

type ExportCmd struct {
	Start   string `arg:"" help:"First date to export (YYYY-MM-DD or 'today')."`
	End     string `arg:"" help:"Last date to export (YYYY-MM-DD or 'today')."`
	Out     string `short:"o" help:"File or directory to write to. Defaults to stdout."`
	Dialect string `help:"CSV dialect (plain or quoted). Defaults to the config file value."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	start, err := ctx.DateArg(c.Start)
	if err != nil {
		return err
	}
	end, err := ctx.DateArg(c.End)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	text, err := csvcodec.ExportDialect(start, end, s.Table, dialectFor(ctx, c.Dialect))
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err := io.WriteString(ctx.Stdout(), text)
		return err
	}

	path := c.Out
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, csvcodec.FileName(start, end))
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("Exported time table", "session", s.ID, "start", start, "end", end, "path", path)

	ctx.Printf("✓ Exported %s to %s to %s\n", start, end, path)
	return nil
}

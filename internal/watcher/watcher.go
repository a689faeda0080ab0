// Package watcher re-runs a callback whenever a file is rewritten.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/logger"
)

// Watcher reacts to writes of a single file. Bursts of events within Debounce of
// each other collapse into one callback, fired after the burst settles.
type Watcher struct {
	Debounce  time.Duration
	ReadTries int
	ReadPause time.Duration
}

func New() *Watcher {
	return &Watcher{
		Debounce:  constants.WatchDebounce,
		ReadTries: constants.WatchReadTries,
		ReadPause: constants.WatchReadPause,
	}
}

// Watch runs New().Watch.
func Watch(ctx context.Context, path string, onChange func(content []byte) error) error {
	return New().Watch(ctx, path, onChange)
}

// Watch blocks until ctx is done, calling onChange with the file's content after each
// settled write. The parent directory is watched so editors that save by renaming a
// temp file over path are still seen. Callbacks run one at a time on the calling
// goroutine; an error from onChange is logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(content []byte) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logger.Debug("Watching file", "path", target)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if !w.relevant(event, target) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			content, err := w.readLoop(target)
			if err != nil {
				logger.Warn("Failed to read watched file", "path", target, "error", err)
				continue
			}
			if err := onChange(content); err != nil {
				logger.Warn("Watched file change handler failed", "path", target, "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			logger.Warn("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// readLoop retries while the file reads back empty, which happens when the writer
// has truncated it but not yet written.
func (w *Watcher) readLoop(path string) ([]byte, error) {
	for i := 0; i < w.ReadTries; i++ {
		b, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if len(b) > 0 {
			return b, nil
		}
		time.Sleep(w.ReadPause)
	}
	return nil, fmt.Errorf("%s stayed empty after %d reads", path, w.ReadTries)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

package watcher

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrAlreadyWatching means another live hourlog process holds the watch lock.
var ErrAlreadyWatching = errors.New("another hourlog watcher is already running")

// Lock marks the one watcher allowed to import into a store. The lockfile holds the
// owner's PID.
type Lock struct {
	path string
}

// AcquireLock creates the lockfile at path. A lockfile left by a process that is gone,
// or that is not hourlog, is replaced.
func AcquireLock(path string) (*Lock, error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", getpidFunc())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write watch lock: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create watch lock: %w", err)
		}

		pid, live := lockOwner(path)
		if live {
			return nil, fmt.Errorf("%w (PID %d, lock %s)", ErrAlreadyWatching, pid, path)
		}
		logger.Info("Replacing stale watch lock", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale watch lock: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyWatching, path)
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release watch lock: %w", err)
	}
	return nil
}

// lockOwner reads the PID in the lockfile and reports whether it is a running hourlog
// process other than this one.
func lockOwner(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 || pid == getpidFunc() {
		return pid, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	return pid, strings.HasPrefix(process.Executable(), constants.AppName)
}

// Package lock keeps a single ididit process per config directory.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/mitchellh/go-ps"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/logger"
)

// ErrLocked is returned when another process holds the lock
var ErrLocked = errors.New("another ididit instance is using this database")

var findProcessFunc = ps.FindProcess

// Holder describes the process recorded in a held lock file
type Holder struct {
	PID        int
	Executable string
	Alive      bool
}

func (h Holder) String() string {
	switch {
	case h.PID == 0:
		return "unknown process"
	case !h.Alive:
		return fmt.Sprintf("pid %d (not running)", h.PID)
	default:
		return fmt.Sprintf("pid %d (%s)", h.PID, h.Executable)
	}
}

// LockedError carries the holder of a lock that could not be taken
type LockedError struct {
	Path   string
	Holder Holder
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s: %s holds %s", ErrLocked, e.Holder, e.Path)
}

func (e *LockedError) Unwrap() error {
	return ErrLocked
}

type Lock struct {
	path string
	flk  *flock.Flock
}

// Acquire takes the exclusive lock in dir, retrying briefly, and records the
// current pid in the lock file.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockFileName)
	flk := flock.New(path)

	for attempt := 1; attempt <= constants.LockMaxAttempts; attempt++ {
		locked, err := flk.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		if locked {
			if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
				_ = flk.Unlock()
				return nil, fmt.Errorf("failed to write lock file: %w", err)
			}
			logger.Debug("Lock acquired", "path", path)
			return &Lock{path: path, flk: flk}, nil
		}
		time.Sleep(constants.LockRetryDelay)
	}

	return nil, &LockedError{Path: path, Holder: ReadHolder(path)}
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}

// Release clears the recorded pid and unlocks. It is safe to call twice.
func (l *Lock) Release() error {
	if l == nil || l.flk == nil || !l.flk.Locked() {
		return nil
	}
	if err := os.WriteFile(l.path, nil, 0600); err != nil {
		logger.Warn("Failed to clear lock file", "path", l.path, "error", err)
	}
	return l.flk.Unlock()
}

// ReadHolder reports the process recorded in the lock file at path
func ReadHolder(path string) Holder {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return Holder{}
	}

	holder := Holder{PID: pid}
	process, err := findProcessFunc(pid)
	if err == nil && process != nil {
		holder.Alive = true
		holder.Executable = process.Executable()
	}
	return holder
}

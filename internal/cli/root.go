package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DEVBOX10/Ididit/internal/backup"
	"github.com/DEVBOX10/Ididit/internal/config"
	"github.com/DEVBOX10/Ididit/internal/lock"
	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/storage"
	"github.com/DEVBOX10/Ididit/internal/storage/jsonstore"
	"github.com/DEVBOX10/Ididit/internal/storage/sqlstore"
	"github.com/DEVBOX10/Ididit/internal/tracker"
)

// ErrNoSQLite is returned by commands that only work on a SQLite database
var ErrNoSQLite = errors.New("this command needs a SQLite database")

// Context is shared by every command
type Context struct {
	Config *config.Config
	Store  storage.Provider
	Out    io.Writer
	In     io.Reader

	tracker *tracker.Tracker
	lock    *lock.Lock
}

func NewContext(cfg *config.Config, store storage.Provider) *Context {
	return &Context{
		Config: cfg,
		Store:  store,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

// OpenStore picks the storage provider for target: PostgreSQL for
// postgres:// URLs, a JSON document for *.json paths and SQLite otherwise.
func OpenStore(target string) (storage.Provider, error) {
	switch {
	case strings.TrimSpace(target) == "":
		return nil, errors.New("no database configured")
	case sqlstore.IsPostgresTarget(target):
		return sqlstore.NewPostgres(target), nil
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return jsonstore.New(target), nil
	default:
		return sqlstore.NewSQLite(target), nil
	}
}

// Tracker loads the store on first use and returns the shared tracker.
// Loading takes the single-instance lock.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Lock(); err != nil {
		return nil, err
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}

	tr := tracker.New(c.Store, c.Config.Lines.Options())
	if err := tr.Load(); err != nil {
		return nil, err
	}
	c.tracker = tr
	return tr, nil
}

// Lock takes the single-instance lock in the config directory
func (c *Context) Lock() error {
	if c.lock != nil {
		return nil
	}
	l, err := lock.Acquire(c.Config.ConfigDir())
	if err != nil {
		return err
	}
	c.lock = l
	return nil
}

// Close closes the store and releases the lock
func (c *Context) Close() error {
	var errs []error
	if err := c.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	if c.lock != nil {
		if err := c.lock.Release(); err != nil {
			errs = append(errs, err)
		}
		c.lock = nil
	}
	c.tracker = nil
	return errors.Join(errs...)
}

// SQLite returns the store when it is a SQLite database
func (c *Context) SQLite() (*sqlstore.Store, bool) {
	s, ok := c.Store.(*sqlstore.Store)
	if !ok || s.Dialect() != sqlstore.SQLite {
		return nil, false
	}
	return s, true
}

// BackupManager manages backups of the SQLite database
func (c *Context) BackupManager() (*backup.Manager, error) {
	s, ok := c.SQLite()
	if !ok {
		return nil, ErrNoSQLite
	}
	return backup.NewManager(s.GetConfigPath(), c.Config.Backup.Keep), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Config.Backup.Disabled {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "path", path)
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

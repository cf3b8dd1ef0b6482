// Package config loads ididit's runtime configuration. Values come from
// defaults, an optional YAML settings file, an optional .env file beside it,
// the environment and finally command line flags, each overriding the last.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
)

// Config is the resolved runtime configuration
type Config struct {
	// Database is a SQLite path, a .json document path or a PostgreSQL URL
	Database       string `yaml:"database" env:"IDIDIT_DATABASE" env-default:"~/.config/ididit/ididit.db" env-description:"SQLite path, .json path or PostgreSQL URL"`
	Debug          bool   `yaml:"debug" env:"IDIDIT_DEBUG" env-description:"log debug output to stderr"`
	UseKeyring     bool   `yaml:"use_keyring" env:"IDIDIT_USE_KEYRING" env-description:"read the PostgreSQL connection string from the OS keyring"`
	KeyringProfile string `yaml:"keyring_profile" env:"IDIDIT_KEYRING_PROFILE" env-description:"keyring entry to use"`
	Lines          Lines  `yaml:"lines" env-prefix:"IDIDIT_LINES_"`
	Backup         Backup `yaml:"backup" env-prefix:"IDIDIT_BACKUP_"`
	Log            Log    `yaml:"log" env-prefix:"IDIDIT_LOG_"`

	// SettingsPath is the file the configuration was read from, if any
	SettingsPath string `yaml:"-"`
}

// Lines tunes how goal Details are split into tasks. The zero value skips
// blank lines and groups "- " lines under the task above.
type Lines struct {
	KeepBlank  bool `yaml:"keep_blank" env:"KEEP_BLANK" env-description:"create tasks for blank Details lines"`
	NoGrouping bool `yaml:"no_grouping" env:"NO_GROUPING" env-description:"treat \"- \" lines as tasks of their own"`
}

// Options converts to the reconciler's line options
func (l Lines) Options() reconcile.LineOptions {
	return reconcile.LineOptions{SkipBlank: !l.KeepBlank, GroupDetails: !l.NoGrouping}
}

// Backup controls automatic SQLite backups
type Backup struct {
	Disabled bool `yaml:"disabled" env:"DISABLED" env-description:"skip the backup taken when the TUI starts"`
	Keep     int  `yaml:"keep" env:"KEEP" env-default:"14" env-description:"number of backups to retain"`
}

// Log tunes the log file. Debug mode overrides Level.
type Log struct {
	Level      string `yaml:"level" env:"LEVEL" env-default:"warn" env-description:"minimum level written to the log file (debug, info, warn, error)"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB" env-default:"10" env-description:"size in megabytes before the log file rotates"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS" env-default:"3" env-description:"rotated log files to keep"`
}

// Flags carries command line overrides. Zero values leave the loaded value alone.
type Flags struct {
	Database string
	Debug    bool
}

// DefaultSettingsPath is where the settings file lives unless --settings says otherwise
func DefaultSettingsPath() string {
	return ExpandHome(filepath.Join(constants.DefaultConfigDir, constants.DefaultSettingsFile))
}

// Load reads the configuration. A missing settings file is not an error; the
// environment and defaults are used instead.
func Load(settingsPath string) (*Config, error) {
	if settingsPath == "" {
		settingsPath = DefaultSettingsPath()
	}
	settingsPath = ExpandHome(settingsPath)

	envFile := filepath.Join(filepath.Dir(settingsPath), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	var cfg Config
	if _, err := os.Stat(settingsPath); err == nil {
		if err := cleanenv.ReadConfig(settingsPath, &cfg); err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
		}
		cfg.SettingsPath = settingsPath
	} else {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking settings file %s: %w", settingsPath, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}
	}

	if cfg.Backup.Keep <= 0 {
		cfg.Backup.Keep = constants.MaxBackups
	}
	cfg.Database = expandDatabase(cfg.Database)
	return &cfg, nil
}

// Apply overrides the loaded values with command line flags
func (c *Config) Apply(f Flags) {
	if f.Database != "" {
		c.Database = expandDatabase(f.Database)
	}
	if f.Debug {
		c.Debug = true
	}
}

// ConfigDir is the directory holding logs and the lock file. It follows the
// settings file when one was loaded.
func (c *Config) ConfigDir() string {
	if c.SettingsPath != "" {
		return filepath.Dir(c.SettingsPath)
	}
	return ExpandHome(constants.DefaultConfigDir)
}

// ResolveDatabase returns the storage target. With UseKeyring set the
// connection string comes from lookup and Database is only a fallback.
func (c *Config) ResolveDatabase(lookup func() (string, error)) (string, error) {
	if !c.UseKeyring || lookup == nil {
		return c.Database, nil
	}
	target, err := lookup()
	if err != nil {
		return "", fmt.Errorf("reading connection string from keyring: %w", err)
	}
	return target, nil
}

// Usage describes the environment variables Config understands
func Usage() string {
	var cfg Config
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return ""
	}
	return text
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func expandDatabase(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	return ExpandHome(target)
}

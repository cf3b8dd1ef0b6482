package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init.
var Logger *log.Logger

var discard = log.New(io.Discard)

// Config selects where log lines go and which are kept
type Config struct {
	ConfigDir string
	// Level is a charmbracelet/log level name; empty means warn
	Level string
	// Debug forces the debug level and mirrors lines to stderr
	Debug      bool
	MaxSizeMB  int
	MaxBackups int
}

func (c Config) level() (log.Level, error) {
	if c.Debug {
		return log.DebugLevel, nil
	}
	if c.Level == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.WarnLevel, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	return level, nil
}

// LogPath returns the log file location for a config directory
func LogPath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init installs the global logger. An unknown level still installs a logger
// at warn level and reports the error.
func Init(cfg Config) error {
	logFile := LogPath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	maxSize, maxBackups := cfg.MaxSizeMB, cfg.MaxBackups
	if maxSize <= 0 {
		maxSize = 10
	}
	if maxBackups <= 0 {
		maxBackups = 3
	}
	var writer io.Writer = &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     28, // days
		Compress:   true,
	}
	// the TUI owns the terminal unless debugging
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, writer)
	}

	level, levelErr := cfg.level()
	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return levelErr
}

// For returns a logger whose lines are prefixed with the component name,
// e.g. "ididit/reconcile". Before Init it discards everything.
func For(component string) *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger.WithPrefix(constants.AppName + "/" + component)
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName             = "ididit"
	DisplayName         = "ididit!"
	DefaultKeyringUser  = "database-connection"
	DefaultConfigDir    = "~/.config/ididit"
	DefaultConfigPath   = "~/.config/ididit/ididit.db"
	DefaultSettingsFile = "config.yaml"
	EnvPrefix           = "IDIDIT_"
	Version             = "v0.3.0"

	// RootCategoryName is given to the category created when the store has none
	RootCategoryName = DisplayName

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ididit-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockFileName    = "ididit.lock"
	LockRetryDelay  = 50 * time.Millisecond
	LockMaxAttempts = 3

	// DetailLinePrefix marks a Details line that belongs to the task above it
	DetailLinePrefix = "- "
)

// Session States
const (
	StateGoals SessionState = iota
	StateTasks
	StateSettings
	StateEditDetails
	StateForm
	StateConfirmDelete
)

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

// unsetEnv clears key for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"IDIDIT_DATABASE",
		"IDIDIT_DEBUG",
		"IDIDIT_USE_KEYRING",
		"IDIDIT_KEYRING_PROFILE",
		"IDIDIT_LINES_KEEP_BLANK",
		"IDIDIT_LINES_NO_GROUPING",
		"IDIDIT_BACKUP_DISABLED",
		"IDIDIT_BACKUP_KEEP",
		"IDIDIT_LOG_LEVEL",
		"IDIDIT_LOG_MAX_SIZE_MB",
		"IDIDIT_LOG_MAX_BACKUPS",
	} {
		unsetEnv(t, key)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "ididit", "ididit.db"), cfg.Database)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.UseKeyring)
	assert.False(t, cfg.Backup.Disabled)
	assert.Equal(t, constants.MaxBackups, cfg.Backup.Keep)
	assert.Empty(t, cfg.SettingsPath)
	assert.Equal(t, Log{Level: "warn", MaxSizeMB: 10, MaxBackups: 3}, cfg.Log)

	opts := cfg.Lines.Options()
	assert.True(t, opts.SkipBlank)
	assert.True(t, opts.GroupDetails)
}

func TestLoadSettingsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, `database: /var/lib/ididit/data.json
debug: true
lines:
  keep_blank: true
backup:
  keep: 3
log:
  level: info
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/ididit/data.json", cfg.Database)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3, cfg.Backup.Keep)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, path, cfg.SettingsPath)
	assert.Equal(t, dir, cfg.ConfigDir())

	opts := cfg.Lines.Options()
	assert.False(t, opts.SkipBlank)
	assert.True(t, opts.GroupDetails)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "database: /tmp/from-file.db\nbackup:\n  keep: 3\n")

	t.Setenv("IDIDIT_DATABASE", "postgres://tracker@localhost/ididit")
	t.Setenv("IDIDIT_BACKUP_KEEP", "7")
	t.Setenv("IDIDIT_LINES_NO_GROUPING", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://tracker@localhost/ididit", cfg.Database)
	assert.Equal(t, 7, cfg.Backup.Keep)
	assert.False(t, cfg.Lines.Options().GroupDetails)
}

func TestDotEnvBesideSettings(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "IDIDIT_BACKUP_DISABLED=true\nIDIDIT_KEYRING_PROFILE=work\n")

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Backup.Disabled)
	assert.Equal(t, "work", cfg.KeyringProfile)
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "IDIDIT_KEYRING_PROFILE=work\n")
	t.Setenv("IDIDIT_KEYRING_PROFILE", "home")

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "home", cfg.KeyringProfile)
}

func TestLoadInvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "backup:\n  keep: [not, a, number]\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{Database: "/tmp/a.db"}
	cfg.Apply(Flags{})
	assert.Equal(t, "/tmp/a.db", cfg.Database)
	assert.False(t, cfg.Debug)

	cfg.Apply(Flags{Database: "~/tracker.json", Debug: true})
	assert.Equal(t, filepath.Join(home, "tracker.json"), cfg.Database)
	assert.True(t, cfg.Debug)

	cfg.Apply(Flags{Database: "postgresql://tracker@db/ididit"})
	assert.Equal(t, "postgresql://tracker@db/ididit", cfg.Database)
}

func TestResolveDatabase(t *testing.T) {
	fromKeyring := func() (string, error) { return "postgres://secret@db/ididit", nil }
	broken := func() (string, error) { return "", errors.New("no keyring") }

	cfg := &Config{Database: "/tmp/a.db"}
	target, err := cfg.ResolveDatabase(fromKeyring)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.db", target)

	cfg.UseKeyring = true
	target, err = cfg.ResolveDatabase(fromKeyring)
	require.NoError(t, err)
	assert.Equal(t, "postgres://secret@db/ididit", target)

	_, err = cfg.ResolveDatabase(broken)
	assert.ErrorContains(t, err, "keyring")
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x/y.db", filepath.Join(home, "x", "y.db")},
		{"/abs/path.db", "/abs/path.db"},
		{"relative.db", "relative.db"},
		{"~other/file", "~other/file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), tt.in)
	}
}

func TestUsageListsVariables(t *testing.T) {
	usage := Usage()
	assert.Contains(t, usage, "IDIDIT_DATABASE")
	assert.Contains(t, usage, "IDIDIT_BACKUP_KEEP")
}

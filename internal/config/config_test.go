package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-journal/internal/errors"
)

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "verbose"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))

	cfg = &Config{Audit: AuditConfig{MaxTokens: -1}}
	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))

	cfg = &Config{
		Logging: LoggingConfig{Level: "debug"},
		Audit:   AuditConfig{MaxTokens: 2048},
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoadCreatesTemplatesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNAL_DB_PATH", "")
	t.Setenv("JOURNAL_LOG_LEVEL", "")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, "credentials.toml"))

	info, err := os.Stat(filepath.Join(dir, "credentials.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Equal(t, "gpt-4o", cfg.Audit.Model)
	assert.Equal(t, 4096, cfg.Audit.MaxTokens)
	assert.True(t, cfg.UI.ColorEnabled)
	assert.Equal(t, DefaultDatabasePath(dir), cfg.Database.Path)
}

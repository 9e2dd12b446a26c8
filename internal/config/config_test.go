package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settled.yaml")

	cfg := Default(filepath.Join(dir, "ledger.db"))
	cfg.Payment.Account = "bank_jane"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, loaded.Database.Path)
	assert.Equal(t, "bank_jane", loaded.Payment.Account)
	assert.Equal(t, "info", loaded.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settled.yaml")
	require.NoError(t, Save(path, Default("from-yaml.db")))

	t.Setenv("SETTLED_DB", "from-env.db")
	t.Setenv("SETTLED_LOG_LEVEL", "debug")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", loaded.Database.Path)
	assert.Equal(t, "debug", loaded.Logging.Level)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settled.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

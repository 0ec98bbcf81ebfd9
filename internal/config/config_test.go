package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/rabbet/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RABBET_TABLE_OUTPUT", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.SeqURL)
	assert.False(t, cfg.Table.Forced())
	assert.False(t, cfg.Join.LegacyProvenance)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "rabbet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: csv
delimiter: ";"
log:
  level: debug
  seq_url: http://localhost:5341
table:
  str_len: 32
join:
  legacy_provenance: true
`), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://localhost:5341", cfg.Log.SeqURL)
	assert.Equal(t, 32, cfg.Table.StrLen)
	assert.True(t, cfg.Join.LegacyProvenance)
}

func TestLoad_UserConfigDir(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rabbet"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rabbet", "config.yaml"), []byte("format: table\n"), 0644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Format)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("RABBET_LOG_LEVEL", "info")
	t.Setenv("RABBET_TABLE_OUTPUT", "1")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Table.Forced())
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

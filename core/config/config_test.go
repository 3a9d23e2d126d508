package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./paks", cfg.Index.Path)
	assert.Equal(t, 5, cfg.Index.Threshold)
	assert.Equal(t, "/Game", cfg.Index.VirtualRoot)
	assert.Equal(t, 15, cfg.Keys.TimeoutSeconds)
	assert.InDelta(t, 1.0, cfg.Keys.RateLimit, 0.001)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "paks", cfg.Storage.Bucket)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("INDEX_PATH", "/data/paks")
	t.Setenv("INDEX_THRESHOLD", "9")
	t.Setenv("KEYS_MAIN_KEY", "0xABC")
	t.Setenv("STORAGE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/data/paks", cfg.Index.Path)
	assert.Equal(t, 9, cfg.Index.Threshold)
	assert.Equal(t, "0xABC", cfg.Keys.MainKey)
	assert.True(t, cfg.Storage.Enabled)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "index:\n  content_root: Game\n  threshold: 2\nserver:\n  port: \"9090\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "Game", cfg.Index.ContentRoot)
	assert.Equal(t, 2, cfg.Index.Threshold)
	assert.Equal(t, "7070", cfg.Server.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_DRIVER=mysql\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("DATABASE_DRIVER") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

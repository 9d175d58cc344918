package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) {
	t.Helper()

	origConfigDir := configDir
	origConfigFile := configFile

	tmpDir := t.TempDir()
	configDir = filepath.Join(tmpDir, "taskdeck")
	configFile = filepath.Join(configDir, "config.yaml")

	t.Cleanup(func() {
		configDir = origConfigDir
		configFile = origConfigFile
	})
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "todos.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "You", cfg.Owner)
}

func TestLoadConfig_Default(t *testing.T) {
	setupTestConfig(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// no config file yet, defaults apply
	assert.Equal(t, GetDefaultConfig().DBPath, cfg.DBPath)
	assert.Equal(t, "You", cfg.Owner)
}

func TestSaveAndLoadConfig(t *testing.T) {
	setupTestConfig(t)

	cfg := &Config{
		DBPath:   filepath.Join(configDir, "custom.db"),
		Owner:    "Alice",
		RepoName: "git@example.com:alice/todos.git",
		Theme:    "dark",
	}
	require.NoError(t, SaveConfig(cfg))
	assert.True(t, ConfigExists())

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.DBPath, loaded.DBPath)
	assert.Equal(t, "Alice", loaded.Owner)
	assert.Equal(t, cfg.RepoName, loaded.RepoName)
	assert.Equal(t, "dark", loaded.Theme)
}

func TestLoadConfig_FillsMissingFields(t *testing.T) {
	setupTestConfig(t)

	require.NoError(t, EnsureConfigDir())
	require.NoError(t, os.WriteFile(configFile, []byte("theme: light\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "You", cfg.Owner)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganot/dashview/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DASHVIEW_CONFIG_PATH",
		"DASHVIEW_STORAGE_DRIVER",
		"DASHVIEW_STORAGE_PATH",
		"DASHVIEW_BACKEND_URL",
		"DASHVIEW_BACKEND_TIMEOUT",
		"DASHVIEW_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverFile, cfg.Storage.Driver)
	assert.Equal(t, ".dashview", cfg.Storage.Path)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 15, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: sqlite
  path: /var/lib/dashview
backend:
  base_url: https://api.example.com
  timeout_seconds: 30
log:
  level: debug
`), 0o644))
	t.Setenv("DASHVIEW_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/dashview", cfg.Storage.Path)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: file\n"), 0o644))
	t.Setenv("DASHVIEW_CONFIG_PATH", path)
	t.Setenv("DASHVIEW_STORAGE_DRIVER", "sqlite")
	t.Setenv("DASHVIEW_BACKEND_TIMEOUT", "5")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Backend.TimeoutSeconds)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHVIEW_STORAGE_DRIVER", "redis")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHVIEW_BACKEND_TIMEOUT", "soon")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHVIEW_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := config.Load()
	require.Error(t, err)
}

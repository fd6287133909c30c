package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Driver)
	require.Equal(t, "api", cfg.Prefix)
	require.Equal(t, ModeDebug, cfg.Mode)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
port: "9000"
prefix: /v1/
mode: release
store:
  driver: mysql
  timeout_ms: 1500
identity:
  mode: remote
  base_url: https://auth.example.com
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("APP_PORT", "9100")
	t.Setenv("APP_IDENTITY_API_KEY", "anon-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9100", cfg.Port)
	require.Equal(t, "v1", cfg.Prefix)
	require.Equal(t, ModeRelease, cfg.Mode)
	require.Equal(t, "mysql", cfg.Store.Driver)
	require.Equal(t, 1500, cfg.Store.TimeoutMs)
	require.Equal(t, "remote", cfg.Identity.Mode)
	require.Equal(t, "https://auth.example.com", cfg.Identity.BaseURL)
	require.Equal(t, "anon-key", cfg.Identity.APIKey)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
}

func TestGetFallsBackToDefault(t *testing.T) {
	Set(nil)
	t.Cleanup(func() { Set(nil) })
	require.Equal(t, "8080", Get().Port)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROJETO_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	require.Equal(t, 30*time.Second, cfg.API.Timeout)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projeto.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://backend:9000/api
  timeout: 5s
  silent_listings: true
server:
  port: 9090
log:
  level: debug
`), 0o600))

	t.Setenv("PROJETO_CONFIG_PATH", path)
	t.Setenv("PROJETO_API_TOKEN", "tok")
	t.Setenv("PROJETO_SERVER_PORT", "9191")
	t.Setenv("PROJETO_SERVER_TOKEN", "srv")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://backend:9000/api", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout)
	require.True(t, cfg.API.SilentListings)
	require.Equal(t, "tok", cfg.API.Token)
	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "srv", cfg.Server.Token)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("PROJETO_SERVER_PORT", "abc")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("PROJETO_API_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidMode(t *testing.T) {
	t.Setenv("PROJETO_TRANSPORT_MODE", "grpc")
	_, err := Load()
	require.ErrorContains(t, err, "transport.mode")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("PROJETO_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

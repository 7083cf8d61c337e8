package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 120*time.Second, cfg.CallTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOGMESH_PROVIDER", "openai")
	t.Setenv("CATALOGMESH_CONCURRENCY", "7")
	t.Setenv("CATALOGMESH_CALL_TIMEOUT", "45s")
	t.Setenv("CATALOGMESH_DATA_DIR", "/tmp/catalog")

	cfg := Load()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 7, cfg.Concurrency)
	assert.Equal(t, 45*time.Second, cfg.CallTimeout)
	assert.Equal(t, "/tmp/catalog", cfg.DataDir)
}

func TestLoad_BadEnvValuesIgnored(t *testing.T) {
	t.Setenv("CATALOGMESH_CONCURRENCY", "many")
	t.Setenv("CATALOGMESH_CALL_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 120*time.Second, cfg.CallTimeout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: openai\nconcurrency: 5\ndataDir: /var/lib/catalog\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 5, cfg.Concurrency)
	assert.Equal(t, "/var/lib/catalog", cfg.DataDir)
	// untouched fields keep their defaults
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadFile_EnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: openai\n"), 0o644))
	t.Setenv("CATALOGMESH_PROVIDER", "anthropic")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Provider = "bard"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Concurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DataDir = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxProviderCalls = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Provider = "mock"
	assert.NoError(t, cfg.Validate())
}

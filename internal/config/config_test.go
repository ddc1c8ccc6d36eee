package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoaderDefaults(t *testing.T) {
	loader := NewLoader(t.TempDir(), Development)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mean", cfg.Ephemeris.Provider)
	assert.Equal(t, "coordinates_cache.json", cfg.Geocoder.CachePath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Contains(t, cfg.LoadedFrom, "defaults")
}

func TestLoaderLayering(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "server:\n  port: 9000\nlogging:\n  level: warn\n")
	writeConfig(t, dir, "production.yaml", "server:\n  port: 9100\n")

	cfg, err := NewLoader(dir, Production).Load()
	require.NoError(t, err)

	// The environment file overrides base; untouched keys fall through.
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoaderEnvironmentVariables(t *testing.T) {
	t.Setenv("SERVER_PORT", "7777")
	t.Setenv("EPHEMERIS_PROVIDER", "http")
	t.Setenv("EPHEMERIS_BASE_URL", "http://ephemeris.test/positions")

	cfg, err := NewLoader(t.TempDir(), Development).Load()
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "http", cfg.Ephemeris.Provider)
	assert.Equal(t, "http://ephemeris.test/positions", cfg.Ephemeris.BaseURL)
}

func TestLoaderValidation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", "ephemeris:\n  provider: http\n")

	// http provider without a base URL is rejected.
	_, err := NewLoader(dir, Development).Load()
	assert.Error(t, err)

	dir = t.TempDir()
	writeConfig(t, dir, "base.yaml", "server:\n  port: -1\n")
	_, err = NewLoader(dir, Development).Load()
	assert.Error(t, err)
}

func TestLoaderLocalOverridesOnlyInDevelopment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "local.yaml", "server:\n  port: 6000\n")

	dev, err := NewLoader(dir, Development).Load()
	require.NoError(t, err)
	assert.Equal(t, 6000, dev.Server.Port)

	prod, err := NewLoader(dir, Production).Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, prod.Server.Port)
}

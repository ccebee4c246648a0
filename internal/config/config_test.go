package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/ocsf-protogen/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere: defaults apply.
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		// A missing explicit file is an error; fall back like the CLI does.
		cfg = config.Default()
	}

	assert.Equal(t, "https://schema.ocsf.io/export/schema", cfg.Schema.URL)
	assert.Equal(t, "1.7.0", cfg.Schema.Version)
	assert.Equal(t, ".", cfg.Schema.CacheDir)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
schema:
  version: "1.8.0"
  cache_dir: /var/cache/ocsf
output:
  dir: ./proto
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1.8.0", cfg.Schema.Version)
	assert.Equal(t, "/var/cache/ocsf", cfg.Schema.CacheDir)
	assert.Equal(t, "./proto", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset keys keep their defaults.
	assert.Equal(t, "https://schema.ocsf.io/export/schema", cfg.Schema.URL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OCSFGEN_SCHEMA_URL", "https://example.test/export")
	t.Setenv("OCSFGEN_OUTPUT_DIR", "/tmp/proto")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/export", cfg.Schema.URL)
	assert.Equal(t, "/tmp/proto", cfg.Output.Dir)
	// Keys without an env override keep their defaults.
	assert.Equal(t, "1.7.0", cfg.Schema.Version)
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefault(path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

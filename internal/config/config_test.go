package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Build.SourceMaps)
	assert.False(t, cfg.Build.StripComments)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2.0, cfg.Watch.RebuildsPerSecond)
	assert.Contains(t, cfg.Watch.Ignore, "**/node_modules/**")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CAPSULE_STRIP_COMMENTS", "true")
	t.Setenv("CAPSULE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Build.StripComments)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capsule.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[build]
source_maps = true
report = "build-report.json"

[watch]
rebuilds_per_second = 0.5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Build.SourceMaps)
	assert.Equal(t, "build-report.json", cfg.Build.ReportPath)
	assert.Equal(t, 0.5, cfg.Watch.RebuildsPerSecond)
	// Sections absent from the file keep their env defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

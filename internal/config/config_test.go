package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/chart-segmenter/internal/segment"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart-segmenter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v := New()
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, segment.DefaultConfig(), cfg.Segment())
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DebugOverlay)
	assert.Zero(t, cfg.Workers)
	assert.Empty(t, ConfigFileUsed(v))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
output_dir: crops
debug_overlay: true
workers: 4
invert: true
three_way: false
top:
  depth: 2
  top_k: 5
sub:
  threshold: 180
`)

	v := New()
	cfg, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, "crops", cfg.OutputDir)
	assert.True(t, cfg.DebugOverlay)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Invert)
	assert.False(t, cfg.ThreeWay)
	assert.Equal(t, 2, cfg.Top.Depth)
	assert.Equal(t, 5, cfg.Top.TopK)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 2, cfg.Top.MinCandidates)
	assert.Equal(t, 180, cfg.Sub.Threshold)
	assert.Equal(t, 2, cfg.Sub.Depth)
	assert.Equal(t, path, ConfigFileUsed(v))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CHART_SEGMENTER_OUTPUT_DIR", "from-env")
	t.Setenv("CHART_SEGMENTER_SUB_THRESHOLD", "150")
	t.Setenv("CHART_SEGMENTER_THREE_WAY", "false")

	path := writeConfig(t, "output_dir: from-file\n")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OutputDir, "environment overrides the file")
	assert.Equal(t, 150, cfg.Sub.Threshold)
	assert.False(t, cfg.ThreeWay)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "top: [not, a, map\n")

	_, err := Load(New(), path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "sub:\n  threshold: 300\n")

	_, err := Load(New(), path)
	assert.Error(t, err)
}

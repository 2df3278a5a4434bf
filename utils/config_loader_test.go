package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPipelineConfig(t *testing.T) {
	cfg := DefaultPipelineConfig()

	// Survey app column names: magnetics exports field components as x/y/z.
	assert.Equal(t, "t", cfg.Recordings.Magnetics.Timestamp)
	assert.Equal(t, "x", cfg.Recordings.Magnetics.MagX)
	assert.Equal(t, "z", cfg.Recordings.Magnetics.MagZ)
	assert.Equal(t, "ms", cfg.Recordings.Magnetics.TimeUnit)
	assert.Equal(t, "floor", cfg.Recordings.Positions.Floor)

	assert.Equal(t, "interpolation", cfg.Calculator.Strategy)
	assert.Equal(t, 500, cfg.Calculator.ToleranceMs)
	assert.True(t, cfg.Calculator.SkipUnaligned)
	assert.Equal(t, 1.0, cfg.Grid.CellWidth)
	assert.True(t, cfg.Storage.CSV.WriteHeader)
}

func TestLoadPipelineConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
calculator:
  strategy: nearest
  tolerance_ms: 250
grid:
  cell_width: 5
  cell_height: 5
`), 0644))

	cfg, err := LoadPipelineConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "nearest", cfg.Calculator.Strategy)
	assert.Equal(t, 250, cfg.Calculator.ToleranceMs)
	assert.Equal(t, 5.0, cfg.Grid.CellWidth)
	// Untouched sections keep their defaults.
	assert.Equal(t, "t", cfg.Recordings.Magnetics.Timestamp)
	assert.Equal(t, "ips", cfg.Storage.SessionPrefix)
}

func TestLoadPipelineConfigEmptyPath(t *testing.T) {
	cfg, err := LoadPipelineConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultPipelineConfig(), cfg)
}

func TestLoadPipelineConfigErrors(t *testing.T) {
	_, err := LoadPipelineConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("grid: ["), 0644))
	_, err = LoadPipelineConfig(bad)
	require.Error(t, err)
}

func TestUnitNanos(t *testing.T) {
	cases := map[string]float64{
		"s": 1e9, "ms": 1e6, "us": 1e3, "ns": 1, "": 1e6, "MS": 1e6,
	}
	for unit, want := range cases {
		got, err := UnitNanos(unit)
		require.NoError(t, err, unit)
		assert.Equal(t, want, got, unit)
	}

	_, err := UnitNanos("minutes")
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("Warn"))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}

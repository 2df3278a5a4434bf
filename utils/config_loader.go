package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ─── Recording schemas ──────────────────────────────────────────────────
//
// Recording files name their columns however the capture app liked;
// the schema maps logical fields to concrete column names. The defaults
// match the survey app's own exports (magnetics: t,x,y,z,accuracy —
// yes, the field components are exported as plain x/y/z).

type MagneticsSchema struct {
	Timestamp string `yaml:"timestamp"`
	MagX      string `yaml:"mag_x"`
	MagY      string `yaml:"mag_y"`
	MagZ      string `yaml:"mag_z"`
	Accuracy  string `yaml:"accuracy"`  // optional; empty disables
	TimeUnit  string `yaml:"time_unit"` // s, ms, us, ns (default ms)
}

type PositionsSchema struct {
	Timestamp string `yaml:"timestamp"`
	X         string `yaml:"x"`
	Y         string `yaml:"y"`
	Floor     string `yaml:"floor"` // optional
	Type      string `yaml:"type"`  // optional
	Accuracy  string `yaml:"accuracy"`
	TimeUnit  string `yaml:"time_unit"`
}

// ─── Pipeline stages ────────────────────────────────────────────────────

type CalculatorConfig struct {
	Strategy      string `yaml:"strategy"` // "interpolation" or "nearest"
	ToleranceMs   int    `yaml:"tolerance_ms"`
	SkipUnaligned bool   `yaml:"skip_unaligned"`
}

type GridConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // metres
	CellHeight float64 `yaml:"cell_height"` // metres
}

// ─── Storage configs ────────────────────────────────────────────────────

type CSVStorageConfig struct {
	BufferSizeKB int  `yaml:"buffer_size_kb"`
	WriteHeader  bool `yaml:"write_header"`
}

type StorageConfig struct {
	BaseDir       string           `yaml:"base_dir"`
	SessionPrefix string           `yaml:"session_prefix"`
	CSV           CSVStorageConfig `yaml:"csv"`
	Overwrite     bool             `yaml:"overwrite"`
}

// PipelineConfig is the top-level structure for pipeline.yaml.
type PipelineConfig struct {
	Recordings struct {
		Magnetics MagneticsSchema `yaml:"magnetics"`
		Positions PositionsSchema `yaml:"positions"`
	} `yaml:"recordings"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Grid       GridConfig       `yaml:"grid"`
	Storage    StorageConfig    `yaml:"storage"`
}

// DefaultPipelineConfig returns the configuration used when no pipeline.yaml
// is supplied. Schema defaults match the survey app's CSV exports.
func DefaultPipelineConfig() *PipelineConfig {
	cfg := &PipelineConfig{}
	cfg.Recordings.Magnetics = MagneticsSchema{
		Timestamp: "t",
		MagX:      "x", MagY: "y", MagZ: "z",
		Accuracy: "accuracy",
		TimeUnit: "ms",
	}
	cfg.Recordings.Positions = PositionsSchema{
		Timestamp: "t",
		X:         "x", Y: "y",
		Floor: "floor", Type: "type", Accuracy: "accuracy",
		TimeUnit: "ms",
	}
	cfg.Calculator = CalculatorConfig{
		Strategy:      "interpolation",
		ToleranceMs:   500,
		SkipUnaligned: true,
	}
	cfg.Grid = GridConfig{CellWidth: 1.0, CellHeight: 1.0}
	cfg.Storage = StorageConfig{
		BaseDir:       "data",
		SessionPrefix: "ips",
		CSV:           CSVStorageConfig{BufferSizeKB: 256, WriteHeader: true},
	}
	return cfg
}

// LoadPipelineConfig reads and parses pipeline.yaml over the defaults.
// An empty path returns the defaults unchanged.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}
	return cfg, nil
}

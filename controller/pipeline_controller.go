package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"ips-mapper/models"
	"ips-mapper/services/loader"
	"ips-mapper/utils"
	"ips-mapper/views"
)

// PipelineController runs one survey recording end to end:
//
//	magnetics.csv ─┐
//	               ├─► loader ─► PositionCalculator ─► GridBuilder ─► session CSVs
//	positions.csv ─┘
//
// The two loads are independent and run in parallel; everything after is a
// pure in-memory transformation. Results stay on the controller so callers
// (CLI, tests) can inspect them after Run.
type PipelineController struct {
	cfg        *utils.PipelineConfig
	sessionDir string
	magPath    string
	posPath    string

	Magnetics *models.MagneticRecording
	Positions *models.PositionRecording
	Estimates []models.PositionEstimate
	Grid      *models.RectGrid
	Heat      *mat.Dense
}

// NewPipelineController sets up the session directory for this run.
func NewPipelineController(cfg *utils.PipelineConfig, magPath, posPath string) (*PipelineController, error) {
	sess := utils.SessionName(cfg.Storage.SessionPrefix)
	sessionDir := filepath.Join(cfg.Storage.BaseDir, sess)

	if !cfg.Storage.Overwrite {
		if _, err := os.Stat(sessionDir); err == nil {
			return nil, fmt.Errorf("session dir %s already exists (overwrite=false)", sessionDir)
		}
	}
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	utils.L().Info("pipeline ready          session=%s", sessionDir)
	return &PipelineController{
		cfg:        cfg,
		sessionDir: sessionDir,
		magPath:    magPath,
		posPath:    posPath,
	}, nil
}

func (pc *PipelineController) strategy() (MappingStrategy, error) {
	c := pc.cfg.Calculator
	switch c.Strategy {
	case "", "interpolation":
		return InterpolationStrategy{}, nil
	case "nearest":
		return NearestNeighborStrategy{ToleranceNs: int64(c.ToleranceMs) * 1e6}, nil
	default:
		return nil, fmt.Errorf("unknown mapping strategy %q (want interpolation or nearest)", c.Strategy)
	}
}

// Run executes load → compute → grid → export as one atomic unit of work.
func (pc *PipelineController) Run(ctx context.Context) error {
	// Both recordings load independently.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, err := loader.LoadMagneticsFile(pc.magPath, pc.cfg.Recordings.Magnetics)
		if err != nil {
			return err
		}
		pc.Magnetics = rec
		return nil
	})
	g.Go(func() error {
		rec, err := loader.LoadPositionsFile(pc.posPath, pc.cfg.Recordings.Positions)
		if err != nil {
			return err
		}
		pc.Positions = rec
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	strategy, err := pc.strategy()
	if err != nil {
		return err
	}
	calc := &PositionCalculator{
		Strategy:      strategy,
		SkipUnaligned: pc.cfg.Calculator.SkipUnaligned,
	}
	pc.Estimates, err = calc.Compute(pc.Magnetics, pc.Positions)
	if err != nil {
		return fmt.Errorf("compute positions: %w", err)
	}

	builder := GridBuilder{
		CellWidth:  pc.cfg.Grid.CellWidth,
		CellHeight: pc.cfg.Grid.CellHeight,
	}
	pc.Grid, err = builder.Build(pc.Estimates)
	if err != nil {
		return fmt.Errorf("build grid: %w", err)
	}
	pc.Heat = builder.Heatmap(pc.Grid, pc.Estimates)

	csvCfg := pc.cfg.Storage.CSV
	if err := views.ExportEstimates(filepath.Join(pc.sessionDir, "estimates.csv"), pc.Estimates, csvCfg); err != nil {
		return fmt.Errorf("export estimates: %w", err)
	}
	if err := views.ExportGrid(filepath.Join(pc.sessionDir, "grid.csv"), pc.Grid, pc.Heat, csvCfg); err != nil {
		return fmt.Errorf("export grid: %w", err)
	}

	skipped := len(pc.Magnetics.Samples) - len(pc.Estimates)
	utils.L().Info("── pipeline summary ──────────────────")
	utils.L().Info("  magnetic samples: %d  (skipped=%d)", len(pc.Magnetics.Samples), skipped)
	utils.L().Info("  ground-truth fixes: %d", len(pc.Positions.Fixes))
	utils.L().Info("  strategy: %s", strategy.Name())
	utils.L().Info("  grid: %dx%d cells of %g x %g m at (%g, %g)",
		pc.Grid.Cols, pc.Grid.Rows, pc.Grid.CellWidth, pc.Grid.CellHeight,
		pc.Grid.OriginX, pc.Grid.OriginY)
	utils.L().Info("──────────────────────────────────────")
	return nil
}

// SessionDir returns the path to the active session directory.
func (pc *PipelineController) SessionDir() string {
	return pc.sessionDir
}

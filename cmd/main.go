package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ips-mapper/controller"
	"ips-mapper/utils"
)

func main() {
	// ── CLI flags ────────────────────────────────────────────────────
	magPath := flag.String("magnetics", "", "path to the magnetics recording CSV (required)")
	posPath := flag.String("positions", "", "path to the ground-truth positions CSV (required)")
	cfgPath := flag.String("config", "", "optional path to pipeline.yaml")
	outDir := flag.String("out", "", "output base directory (overrides config)")
	cellW := flag.Float64("cell-w", 0, "grid cell width in metres (overrides config)")
	cellH := flag.Float64("cell-h", 0, "grid cell height in metres (overrides config)")
	strategy := flag.String("strategy", "", "mapping strategy: interpolation or nearest (overrides config)")
	tolMs := flag.Int("tolerance-ms", 0, "nearest-match tolerance window in ms (overrides config)")
	logFile := flag.String("log", "", "optional log file path (stdout is always included)")
	logLevel := flag.String("level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	// ── Logger ───────────────────────────────────────────────────────
	logger := utils.InitLogger(utils.ParseLevel(*logLevel), *logFile)
	defer logger.Close()

	if *magPath == "" || *posPath == "" {
		flag.Usage()
		utils.L().Fatal("both -magnetics and -positions are required")
	}

	utils.L().Info("═══════════════════════════════════════════════════")
	utils.L().Info("  IPS-Mapper  ·  Magnetic Fingerprint Grid Builder")
	utils.L().Info("  PID=%d", os.Getpid())
	utils.L().Info("═══════════════════════════════════════════════════")

	// ── Load config ──────────────────────────────────────────────────
	cfg, err := utils.LoadPipelineConfig(*cfgPath)
	if err != nil {
		utils.L().Fatal("load pipeline config: %v", err)
	}

	// Flag overrides.
	if *outDir != "" {
		cfg.Storage.BaseDir = *outDir
	}
	if *cellW > 0 {
		cfg.Grid.CellWidth = *cellW
	}
	if *cellH > 0 {
		cfg.Grid.CellHeight = *cellH
	}
	if *strategy != "" {
		cfg.Calculator.Strategy = *strategy
	}
	if *tolMs > 0 {
		cfg.Calculator.ToleranceMs = *tolMs
	}

	// Resolve relative base_dir to absolute.
	if !filepath.IsAbs(cfg.Storage.BaseDir) {
		abs, _ := filepath.Abs(cfg.Storage.BaseDir)
		cfg.Storage.BaseDir = abs
	}

	// ── Context with OS signal cancellation ──────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Pipeline ─────────────────────────────────────────────────────
	pipeline, err := controller.NewPipelineController(cfg, *magPath, *posPath)
	if err != nil {
		utils.L().Fatal("init pipeline: %v", err)
	}

	if err := pipeline.Run(ctx); err != nil {
		utils.L().Fatal("pipeline failed: %v", err)
	}

	fmt.Println("\n✓ IPS-Mapper finished. Session at:", pipeline.SessionDir())
}

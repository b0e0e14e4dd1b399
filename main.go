package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"enclave/config"
	"enclave/sim"
	"enclave/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, or time-based if that is also 0)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV log, config snapshot, and run record")
	logStats := flag.Bool("log-stats", false, "Log per-step stats via slog")
	flag.Parse()

	// JSON to stdout for structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = cfg.Run.Seed
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	steps := cfg.Run.MaxSteps
	if *maxSteps > 0 {
		steps = *maxSteps
	}

	engine, err := sim.New(cfg, runSeed)
	if err != nil {
		slog.Error("failed to initialize engine", "error", err)
		os.Exit(1)
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	slog.Info("starting simulation",
		"seed", runSeed,
		"width", cfg.Grid.Width,
		"height", cfg.Grid.Height,
		"agents", len(engine.Agents()),
		"max_steps", steps,
	)

	logEvery := cfg.Telemetry.LogEvery
	if logEvery < 1 {
		logEvery = 1
	}

	collector := &telemetry.Collector{}
	perf := telemetry.NewPerfCollector(100)
	initialSeg := engine.Segregation()
	converged := false

	for i := 0; i < steps; i++ {
		perf.StartStep()
		stats, err := engine.Step()
		perf.EndStep()
		if err != nil {
			slog.Error("step failed", "step", engine.StepCount(), "error", err)
			os.Exit(1)
		}

		rec := collector.Observe(stats, engine.Agents())
		if err := out.WriteStep(rec); err != nil {
			slog.Error("failed to write step record", "error", err)
		}
		if *logStats && stats.Step%logEvery == 0 {
			rec.LogStats()
		}

		if stats.Moves == 0 {
			converged = true
			break
		}
	}

	perf.Stats().LogStats()
	slog.Info("run complete",
		"steps", engine.StepCount(),
		"converged", converged,
		"total_moves", collector.TotalMoves(),
		"initial_segregation", initialSeg,
		"final_segregation", engine.Segregation(),
	)

	if out.Enabled() {
		rec := &telemetry.RunRecord{
			Version:            telemetry.RunRecordVersion,
			Seed:               runSeed,
			Steps:              engine.StepCount(),
			Converged:          converged,
			TotalMoves:         collector.TotalMoves(),
			InitialSegregation: initialSeg,
			FinalSegregation:   engine.Segregation(),
			Income:             telemetry.SummarizeIncomes(engine.Agents()),
			Final:              engine.Snapshot(),
		}
		if err := out.WriteRunRecord(rec); err != nil {
			slog.Error("failed to write run record", "error", err)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"darkagency/config"
	"darkagency/sim"
	"darkagency/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Override tick budget (0 = use config)")
	population := flag.Int("population", 0, "Override population size (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, report, and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log per-tick statistics via slog")
	tickDelay := flag.Int("tick-delay", -1, "Sleep between ticks in ms for external renderers (-1 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *maxTicks > 0 {
		cfg.Run.MaxTicks = *maxTicks
	}
	if *population > 0 {
		cfg.Run.Population = *population
	}
	if *tickDelay >= 0 {
		cfg.Run.TickDelayMS = *tickDelay
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	s := sim.New(cfg, rngSeed)
	engine := telemetry.NewEngine(cfg.Report.ConfirmThreshold)
	s.AddObserver(engine)

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", cfg.Run.MaxTicks,
		"population", cfg.Run.Population,
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"goals", s.Grid().GoalCount(),
	)
	for arch, n := range s.Census() {
		slog.Info("population census", "archetype", arch.String(), "count", n)
	}

	delay := time.Duration(cfg.Run.TickDelayMS) * time.Millisecond
	for {
		running := s.Step()

		if err := output.WriteTick(engine); err != nil {
			slog.Error("failed to write telemetry", "error", err)
			os.Exit(1)
		}
		if *logStats {
			corr := engine.Correlations()
			slog.Info("tick stats",
				"tick", s.Tick(),
				"alive", s.AliveCount(),
				"r_residual_innovation", corr.ResidualInnovation,
				"r_core_damage", corr.CoreDamage,
				"r_core_innovation", corr.CoreInnovation,
			)
		}

		if !running {
			break
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	report := engine.Report()
	fmt.Print(report.Render())
	if err := output.WriteSummary(report); err != nil {
		slog.Error("failed to write summary", "error", err)
		os.Exit(1)
	}

	slog.Info("simulation finished",
		"ticks", s.Tick(),
		"alive", s.AliveCount(),
		"synthesis", report.Synthesis,
	)
}

// Command galaxysim runs a level headless on a fixed timestep and prints where every
// planet ended up.
package main

import (
	"context"
	"cubeplanets/internal/config"
	"cubeplanets/internal/engine"
	"cubeplanets/internal/logger"
	"cubeplanets/internal/metrics"
	"cubeplanets/internal/world"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "engine config file, empty for defaults")
	levelPath := flag.String("level", "", "level file, overrides simulation.level")
	duration := flag.Float64("duration", 0, "simulated seconds, overrides simulation.duration")
	report := flag.Bool("report", true, "print the final planet layout as YAML")
	listScripts := flag.Bool("scripts", false, "list the scripts a level can attach and exit")
	flag.Parse()

	if *listScripts {
		for _, name := range engine.GetRegisteredScripts() {
			fmt.Println(name)
		}
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if *levelPath != "" {
		cfg.Simulation.Level = *levelPath
	}
	if *duration > 0 {
		cfg.Simulation.Duration = float32(*duration)
	}
	if cfg.Simulation.Level == "" {
		slog.Error("No level given, use -level or simulation.level")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *report); err != nil {
		slog.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, report bool) error {
	lvl, err := config.LoadLevel(cfg.Simulation.Level)
	if err != nil {
		return err
	}

	var m *metrics.Collector
	if cfg.Metrics.Enabled {
		m = metrics.New()
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Listen); err != nil {
				slog.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	w, err := world.Build(cfg, lvl, m)
	if err != nil {
		return err
	}

	summary, err := w.Run(ctx, cfg.Simulation.Duration)
	if errors.Is(err, context.Canceled) {
		slog.Warn("Simulation interrupted", "ticks", summary.Ticks, "elapsed", summary.Elapsed)
	} else if err != nil {
		return err
	}

	if !report {
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(map[string]any{
		"level":    lvl.Name,
		"ticks":    summary.Ticks,
		"elapsed":  summary.Elapsed,
		"pounds":   summary.Pounds,
		"galaxies": w.Report(),
	})
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/noisebench/noisebench/internal/config"
	"github.com/noisebench/noisebench/internal/gate"
	"github.com/noisebench/noisebench/internal/report"
	"github.com/noisebench/noisebench/internal/study"
)

func main() {
	configPath := flag.String("config", "study.yaml", "path to study config file")
	watch := flag.Bool("watch", false, "re-run the study whenever the config file changes")
	outDir := flag.String("out", "", "base directory for metrics and plot outputs (overrides report paths)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("noisebench starting", "config", *configPath, "watch", *watch)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	applyOutDir(cfg, *outDir)
	slog.Info("config loaded",
		"scenario", cfg.Scenario,
		"noise_levels", len(cfg.Noise.Levels),
		"trials", cfg.Evaluation.Trials,
	)

	hist := study.NewHistory()

	critical, err := runStudy(cfg, hist)
	if err != nil {
		slog.Error("study failed", "err", err)
		os.Exit(1)
	}

	if !*watch {
		if critical {
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Watch mode: every config rewrite triggers a fresh study; a failed
	// run is logged and the previous results stay in the history. A
	// critical gate in any run is remembered and surfaces in the exit
	// code at shutdown.
	sawCritical := critical
	if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
		applyOutDir(updated, *outDir)
		crit, err := runStudy(updated, hist)
		if err != nil {
			slog.Error("study failed", "scenario", updated.Scenario, "err", err)
			return
		}
		if crit {
			sawCritical = true
		}
	}); err != nil {
		slog.Error("config watcher stopped", "err", err)
		os.Exit(1)
	}

	slog.Info("noisebench shutting down", "critical_seen", sawCritical)
	if sawCritical {
		os.Exit(1)
	}
}

// applyOutDir rebases the report outputs under dir. With dir empty the
// config is untouched; with dir set, outputs the config left unset get
// default names so -out alone produces a full export.
func applyOutDir(cfg *config.Config, dir string) {
	if dir == "" {
		return
	}
	metrics := cfg.Report.MetricsFile
	if metrics == "" {
		metrics = "noisebench.prom"
	}
	cfg.Report.MetricsFile = filepath.Join(dir, filepath.Base(metrics))

	plots := cfg.Report.PlotDir
	if plots == "" {
		plots = "plots"
	}
	cfg.Report.PlotDir = filepath.Join(dir, filepath.Base(plots))
}

// runStudy executes one full sweep and all configured outputs. It returns
// whether a critical gate fired.
func runStudy(cfg *config.Config, hist *study.History) (bool, error) {
	run, err := study.Execute(cfg)
	if err != nil {
		return false, err
	}

	prev := hist.Put(run)
	if d, ok := study.DeltaOf(prev, run); ok {
		slog.Info("study: delta vs previous run",
			"scenario", run.Scenario,
			"noise_rate", d.NoiseRate,
			"cost_change", d.CostChange,
			"missed_change", d.MissedChange,
			"false_alarm_change", d.FalseAlarmDelta,
		)
	}

	if err := report.WriteSummary(os.Stdout, run); err != nil {
		return false, err
	}

	if cfg.Report.MetricsFile != "" {
		if err := writeMetricsFile(cfg.Report.MetricsFile, run); err != nil {
			return false, err
		}
		slog.Info("study: metrics exported", "path", cfg.Report.MetricsFile)
	}

	if cfg.Report.PlotDir != "" {
		if err := report.SaveCurves(cfg.Report.PlotDir, run); err != nil {
			return false, err
		}
		slog.Info("study: plots written", "dir", cfg.Report.PlotDir)
	}

	violations := gate.Evaluate(cfg.Gates, run)
	return gate.AnyCritical(violations), nil
}

func writeMetricsFile(path string, run *report.Run) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteMetrics(f, run); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

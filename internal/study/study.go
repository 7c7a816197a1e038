package study

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/noisebench/noisebench/internal/config"
	"github.com/noisebench/noisebench/internal/eval"
	"github.com/noisebench/noisebench/internal/model"
	"github.com/noisebench/noisebench/internal/report"
	"github.com/noisebench/noisebench/internal/simulate"
)

// levelSeedStride separates the RNG streams of consecutive noise levels
// so adding a level does not perturb earlier ones.
const levelSeedStride = 7919

// Execute runs the configured noise sweep and assembles the report run.
// Each noise level runs the full Monte Carlo loop with its own derived
// seed; levels are independent and reproducible in isolation.
func Execute(cfg *config.Config) (*report.Run, error) {
	sim, counts, err := simulationParams(cfg.Simulation)
	if err != nil {
		return nil, err
	}
	classes := sim.Classes()

	costs := report.CostModel{
		MissedIssue: cfg.Report.Costs.MissedIssue,
		FalseAlarm:  cfg.Report.Costs.FalseAlarm,
		WrongIssue:  cfg.Report.Costs.WrongIssue,
	}

	run := &report.Run{
		Scenario:    cfg.Scenario,
		StartedAt:   time.Now(),
		Trials:      cfg.Evaluation.Trials,
		AlarmBudget: cfg.Report.AlarmBudget,
	}

	for i, rate := range cfg.Noise.Levels {
		p := eval.Params{
			Trials:       cfg.Evaluation.Trials,
			TestFraction: cfg.Evaluation.TestFraction,
			Seed:         cfg.Evaluation.Seed + uint64(i)*levelSeedStride,
			Forest: model.ForestParams{
				Trees:         cfg.Evaluation.Forest.Trees,
				MaxDepth:      cfg.Evaluation.Forest.MaxDepth,
				MinLeaf:       cfg.Evaluation.Forest.MinLeaf,
				SplitFeatures: cfg.Evaluation.Forest.SplitFeatures,
			},
		}

		noise := simulate.Uniform(classes, rate)
		summary := eval.Run(sim, counts, noise, p)
		if summary.Trials == 0 {
			return nil, fmt.Errorf("study: noise level %.2f produced no usable trials", rate)
		}

		scaled := report.RescaleToBudget(summary.Mean, cfg.Report.AlarmBudget)
		lv := report.Level{
			NoiseRate: rate,
			Mean:      summary.Mean,
			Std:       summary.Std,
			Scaled:    scaled,
			Cost:      costs.Of(scaled),
		}
		run.Levels = append(run.Levels, lv)

		slog.Info("study: level complete",
			"scenario", cfg.Scenario,
			"noise_rate", rate,
			"trials", summary.Trials,
			"mean_missed", summary.Mean.Missed,
			"mean_false_alarms", summary.Mean.FalseAlarms,
			"cost", lv.Cost,
		)
	}

	return run, nil
}

// simulationParams converts the validated config into generator inputs.
func simulationParams(sc config.SimulationConfig) (simulate.Params, []int, error) {
	if len(sc.NormalModes) != 2 {
		return simulate.Params{}, nil, fmt.Errorf("study: expected 2 normal modes, got %d", len(sc.NormalModes))
	}

	sim := simulate.Params{
		Days:        sc.Days,
		NormalModes: [2]float64{sc.NormalModes[0], sc.NormalModes[1]},
		NormalSigma: sc.NormalSigma,
	}
	counts := []int{sc.NormalSamples}
	for _, iss := range sc.Issues {
		sim.Issues = append(sim.Issues, simulate.IssueParams{
			Name:      iss.Name,
			Mean:      iss.Mean,
			Sigma:     iss.Sigma,
			PrefixMin: iss.PrefixMin,
			PrefixMax: iss.PrefixMax,
		})
		counts = append(counts, iss.Samples)
	}
	return sim, counts, nil
}

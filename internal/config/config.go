package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultDays          = 21
	DefaultNormalSigma   = 4.0
	DefaultNormalSamples = 200
	DefaultTrials        = 30
	DefaultTestFraction  = 0.3
	DefaultSeed          = 42
	DefaultForestTrees   = 25
	DefaultMaxDepth      = 8
	DefaultMinLeaf       = 2
	DefaultAlarmBudget   = 100
)

// Default illustrative per-event costs, in whole currency units.
const (
	DefaultCostMissedIssue = 50000
	DefaultCostFalseAlarm  = 1500
	DefaultCostWrongIssue  = 8000
)

// Config is the top-level study configuration.
// Fields map 1:1 to study.example.yaml.
type Config struct {
	// Scenario is a human-readable name for this study, used to key
	// results in watch mode and to label exported metrics.
	Scenario string `yaml:"scenario"`

	Simulation SimulationConfig `yaml:"simulation"`
	Noise      NoiseConfig      `yaml:"noise"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Report     ReportConfig     `yaml:"report"`

	// Gates are threshold conditions checked against the finished sweep.
	Gates []GateRule `yaml:"gates"`
}

// SimulationConfig describes the synthetic sensor data.
type SimulationConfig struct {
	// Days is the length of every stability sequence (one value per day).
	Days int `yaml:"days"`

	// NormalModes are the two operating means of healthy machines.
	// Each generated healthy sequence settles on one of them.
	NormalModes []float64 `yaml:"normal_modes"`

	// NormalSigma is the day-to-day spread around the operating mean.
	NormalSigma float64 `yaml:"normal_sigma"`

	// NormalSamples is how many healthy sequences each dataset holds.
	NormalSamples int `yaml:"normal_samples"`

	// Issues describes each simulated issue type, in label order (1..K).
	Issues []IssueConfig `yaml:"issues"`
}

// IssueConfig describes one issue type's fault signature.
type IssueConfig struct {
	// Name is a human-readable identifier, e.g. "bearing_wear".
	Name string `yaml:"name"`

	// Mean and Sigma parameterise the Gaussian abnormal suffix.
	Mean  float64 `yaml:"mean"`
	Sigma float64 `yaml:"sigma"`

	// PrefixMin and PrefixMax bound the number of healthy days recorded
	// before the fault signature appears. The prefix length is drawn
	// uniformly from [PrefixMin, PrefixMax].
	PrefixMin int `yaml:"prefix_min"`
	PrefixMax int `yaml:"prefix_max"`

	// Samples is how many sequences of this issue each dataset holds.
	Samples int `yaml:"samples"`
}

// NoiseConfig defines the label-noise sweep.
type NoiseConfig struct {
	// Levels is the list of flip probabilities to sweep over. Each level
	// r means: a sample's label is rewritten to a uniformly random other
	// class with probability r. 0 is allowed (clean baseline).
	Levels []float64 `yaml:"levels"`
}

// EvaluationConfig controls the Monte Carlo train/evaluate loop.
type EvaluationConfig struct {
	// Trials is the number of generate/split/fit/predict repetitions
	// per noise level.
	Trials int `yaml:"trials"`

	// TestFraction is the share of noise-free rows held out for testing.
	TestFraction float64 `yaml:"test_fraction"`

	// Seed makes the whole sweep reproducible.
	Seed uint64 `yaml:"seed"`

	Forest ForestConfig `yaml:"forest"`
}

// ForestConfig holds the classifier hyperparameters.
type ForestConfig struct {
	// Trees is the number of bagged trees in the forest.
	Trees int `yaml:"trees"`

	// MaxDepth bounds every tree's depth.
	MaxDepth int `yaml:"max_depth"`

	// MinLeaf is the minimum number of training rows per leaf.
	MinLeaf int `yaml:"min_leaf"`

	// SplitFeatures is the number of features sampled per split.
	// 0 means sqrt(feature count), the usual forest default.
	SplitFeatures int `yaml:"split_features"`
}

// ReportConfig controls how the finished sweep is reported.
type ReportConfig struct {
	// AlarmBudget is the fixed number of alarms the averaged confusion
	// counts are rescaled to before costing. Models an operations team
	// that can investigate a fixed number of alarms per period.
	AlarmBudget float64 `yaml:"alarm_budget"`

	Costs CostConfig `yaml:"costs"`

	// MetricsFile, when set, is where the Prometheus text-format export
	// is written.
	MetricsFile string `yaml:"metrics_file"`

	// PlotDir, when set, is where degradation-curve PNGs are written.
	PlotDir string `yaml:"plot_dir"`
}

// CostConfig holds the illustrative per-event costs.
type CostConfig struct {
	MissedIssue float64 `yaml:"missed_issue"`
	FalseAlarm  float64 `yaml:"false_alarm"`
	WrongIssue  float64 `yaml:"wrong_issue"`
}

// GateRule defines a threshold condition checked after the sweep.
type GateRule struct {
	// Name is the human-readable gate identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "missed_per_budget > 2" or
	// "cost > 150000", evaluated against every noise level's results.
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	// Critical violations make the run exit non-zero.
	Severity string `yaml:"severity"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Scenario: "default",
		Simulation: SimulationConfig{
			Days:          DefaultDays,
			NormalModes:   []float64{70, 85},
			NormalSigma:   DefaultNormalSigma,
			NormalSamples: DefaultNormalSamples,
		},
		Noise: NoiseConfig{
			Levels: []float64{0, 0.05, 0.1, 0.2},
		},
		Evaluation: EvaluationConfig{
			Trials:       DefaultTrials,
			TestFraction: DefaultTestFraction,
			Seed:         DefaultSeed,
			Forest: ForestConfig{
				Trees:    DefaultForestTrees,
				MaxDepth: DefaultMaxDepth,
				MinLeaf:  DefaultMinLeaf,
			},
		},
		Report: ReportConfig{
			AlarmBudget: DefaultAlarmBudget,
			Costs: CostConfig{
				MissedIssue: DefaultCostMissedIssue,
				FalseAlarm:  DefaultCostFalseAlarm,
				WrongIssue:  DefaultCostWrongIssue,
			},
		},
	}
}

// validate checks required fields and structural constraints.
// Parameter mistakes (mismatched lists, impossible probabilities) are
// rejected here so the numeric pipeline never has to handle them.
func validate(cfg *Config) error {
	if cfg.Scenario == "" {
		return fmt.Errorf("scenario is required")
	}

	sim := cfg.Simulation
	if sim.Days <= 0 {
		return fmt.Errorf("simulation.days must be positive")
	}
	if len(sim.NormalModes) != 2 {
		return fmt.Errorf("simulation.normal_modes must list exactly 2 operating means, got %d", len(sim.NormalModes))
	}
	if sim.NormalSigma <= 0 {
		return fmt.Errorf("simulation.normal_sigma must be positive")
	}
	if sim.NormalSamples <= 0 {
		return fmt.Errorf("simulation.normal_samples must be positive")
	}
	if len(sim.Issues) == 0 {
		return fmt.Errorf("simulation.issues: at least one issue type is required")
	}
	for i, iss := range sim.Issues {
		if iss.Name == "" {
			return fmt.Errorf("simulation.issues[%d]: name is required", i)
		}
		if iss.Sigma <= 0 {
			return fmt.Errorf("simulation.issues[%d] %q: sigma must be positive", i, iss.Name)
		}
		if iss.Samples <= 0 {
			return fmt.Errorf("simulation.issues[%d] %q: samples must be positive", i, iss.Name)
		}
		if iss.PrefixMin < 0 || iss.PrefixMax < iss.PrefixMin {
			return fmt.Errorf("simulation.issues[%d] %q: prefix range [%d, %d] is invalid", i, iss.Name, iss.PrefixMin, iss.PrefixMax)
		}
		if iss.PrefixMax >= sim.Days {
			return fmt.Errorf("simulation.issues[%d] %q: prefix_max %d leaves no abnormal days (days = %d)", i, iss.Name, iss.PrefixMax, sim.Days)
		}
	}

	if len(cfg.Noise.Levels) == 0 {
		return fmt.Errorf("noise.levels: at least one level is required")
	}
	for i, lvl := range cfg.Noise.Levels {
		if lvl < 0 || lvl >= 1 {
			return fmt.Errorf("noise.levels[%d]: %v is outside [0, 1)", i, lvl)
		}
	}

	ev := cfg.Evaluation
	if ev.Trials <= 0 {
		return fmt.Errorf("evaluation.trials must be positive")
	}
	if ev.TestFraction <= 0 || ev.TestFraction >= 1 {
		return fmt.Errorf("evaluation.test_fraction must be in (0, 1)")
	}
	if ev.Forest.Trees <= 0 {
		return fmt.Errorf("evaluation.forest.trees must be positive")
	}
	if ev.Forest.MaxDepth <= 0 {
		return fmt.Errorf("evaluation.forest.max_depth must be positive")
	}
	if ev.Forest.MinLeaf <= 0 {
		return fmt.Errorf("evaluation.forest.min_leaf must be positive")
	}
	if ev.Forest.SplitFeatures < 0 {
		return fmt.Errorf("evaluation.forest.split_features must not be negative")
	}

	if cfg.Report.AlarmBudget <= 0 {
		return fmt.Errorf("report.alarm_budget must be positive")
	}

	for i, g := range cfg.Gates {
		if g.Name == "" {
			return fmt.Errorf("gates[%d]: name is required", i)
		}
		if g.Condition == "" {
			return fmt.Errorf("gates[%d] %q: condition is required", i, g.Name)
		}
		switch g.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("gates[%d] %q: unknown severity %q", i, g.Name, g.Severity)
		}
	}

	return nil
}

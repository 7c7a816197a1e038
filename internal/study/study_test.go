package study

import (
	"math"
	"testing"

	"github.com/noisebench/noisebench/internal/config"
)

// testConfig is a fast, well-separated study: two noise levels, few
// trials, tiny forest.
func testConfig() *config.Config {
	return &config.Config{
		Scenario: "unit",
		Simulation: config.SimulationConfig{
			Days:          6,
			NormalModes:   []float64{10, 12},
			NormalSigma:   1,
			NormalSamples: 20,
			Issues: []config.IssueConfig{
				{Name: "overheat", Mean: 30, Sigma: 1, PrefixMin: 0, PrefixMax: 2, Samples: 10},
			},
		},
		Noise: config.NoiseConfig{Levels: []float64{0, 0.2}},
		Evaluation: config.EvaluationConfig{
			Trials:       3,
			TestFraction: 0.3,
			Seed:         1,
			Forest:       config.ForestConfig{Trees: 5, MaxDepth: 4, MinLeaf: 1},
		},
		Report: config.ReportConfig{
			AlarmBudget: 100,
			Costs:       config.CostConfig{MissedIssue: 50000, FalseAlarm: 1500, WrongIssue: 8000},
		},
	}
}

func TestExecute_SweepShape(t *testing.T) {
	cfg := testConfig()
	run, err := Execute(cfg)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if run.Scenario != "unit" || run.Trials != 3 || run.AlarmBudget != 100 {
		t.Errorf("run header = %+v", run)
	}
	if len(run.Levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(run.Levels))
	}
	for i, lv := range run.Levels {
		if lv.NoiseRate != cfg.Noise.Levels[i] {
			t.Errorf("level %d noise rate = %v, want %v", i, lv.NoiseRate, cfg.Noise.Levels[i])
		}
		if lv.Mean.Total() == 0 {
			t.Errorf("level %d has no recorded outcomes", i)
		}
		// When any alarms were raised, the rescaled counts hit the budget.
		if lv.Mean.Alarms() > 0 && math.Abs(lv.Scaled.Alarms()-100) > 1e-9 {
			t.Errorf("level %d scaled alarms = %v, want 100", i, lv.Scaled.Alarms())
		}
		if lv.Cost < 0 {
			t.Errorf("level %d cost = %v", i, lv.Cost)
		}
	}
}

func TestExecute_Deterministic(t *testing.T) {
	a, err := Execute(testConfig())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := Execute(testConfig())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for i := range a.Levels {
		if a.Levels[i].Mean != b.Levels[i].Mean || a.Levels[i].Cost != b.Levels[i].Cost {
			t.Errorf("level %d differs between identical runs", i)
		}
	}
}

func TestSimulationParams_Mapping(t *testing.T) {
	cfg := testConfig()
	sim, counts, err := simulationParams(cfg.Simulation)
	if err != nil {
		t.Fatalf("simulationParams: %v", err)
	}

	if sim.Days != 6 || sim.NormalModes != [2]float64{10, 12} {
		t.Errorf("sim = %+v", sim)
	}
	if sim.Classes() != 2 {
		t.Errorf("classes = %d, want 2", sim.Classes())
	}
	wantCounts := []int{20, 10}
	if len(counts) != len(wantCounts) {
		t.Fatalf("counts = %v, want %v", counts, wantCounts)
	}
	for i := range counts {
		if counts[i] != wantCounts[i] {
			t.Errorf("counts[%d] = %d, want %d", i, counts[i], wantCounts[i])
		}
	}
}

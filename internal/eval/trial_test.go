package eval

import (
	"testing"

	"github.com/noisebench/noisebench/internal/model"
	"github.com/noisebench/noisebench/internal/simulate"
)

// smallStudy is a fast, clearly separable population for loop tests.
func smallStudy() (simulate.Params, []int, Params) {
	sim := simulate.Params{
		Days:        6,
		NormalModes: [2]float64{10, 12},
		NormalSigma: 1,
		Issues: []simulate.IssueParams{
			{Name: "overheat", Mean: 30, Sigma: 1, PrefixMin: 0, PrefixMax: 2},
		},
	}
	counts := []int{20, 10}
	p := Params{
		Trials:       4,
		TestFraction: 0.3,
		Seed:         1,
		Forest:       model.ForestParams{Trees: 5, MaxDepth: 4, MinLeaf: 1},
	}
	return sim, counts, p
}

func TestRun_TestSizeMatchesCleanFraction(t *testing.T) {
	sim, counts, p := smallStudy()
	noise := simulate.Uniform(sim.Classes(), 0) // clean: all 30 rows eligible

	s := Run(sim, counts, noise, p)

	if s.Trials != 4 {
		t.Fatalf("Trials = %d, want 4", s.Trials)
	}
	// round(0.3 * 30) = 9 test rows per trial, so every trial's total is 9.
	for i, c := range s.PerTrial {
		if c.Total() != 9 {
			t.Errorf("trial %d: total outcomes = %v, want 9", i, c.Total())
		}
	}
	if s.Mean.Total() != 9 {
		t.Errorf("mean total = %v, want 9", s.Mean.Total())
	}
}

func TestRun_SeparableDataClassifiesWell(t *testing.T) {
	sim, counts, p := smallStudy()
	noise := simulate.Uniform(sim.Classes(), 0)

	s := Run(sim, counts, noise, p)

	correct := s.Mean.CorrectNormal + s.Mean.CorrectAlarms
	if correct < 8 {
		t.Errorf("mean correct = %.2f of 9, want >= 8 on separable data", correct)
	}
}

func TestRun_Deterministic(t *testing.T) {
	sim, counts, p := smallStudy()
	noise := simulate.Uniform(sim.Classes(), 0.1)

	a := Run(sim, counts, noise, p)
	b := Run(sim, counts, noise, p)

	if a.Mean != b.Mean || a.Std != b.Std {
		t.Errorf("same seed produced different summaries:\n a=%+v\n b=%+v", a.Mean, b.Mean)
	}
}

func TestSummarize_MeanAndStd(t *testing.T) {
	per := []Confusion{
		{Missed: 2, FalseAlarms: 4},
		{Missed: 4, FalseAlarms: 4},
	}
	s := summarize(per)

	if s.Mean.Missed != 3 {
		t.Errorf("mean missed = %v, want 3", s.Mean.Missed)
	}
	if s.Mean.FalseAlarms != 4 {
		t.Errorf("mean false alarms = %v, want 4", s.Mean.FalseAlarms)
	}
	// Sample std of {2, 4} is sqrt(2) ≈ 1.414.
	if s.Std.Missed < 1.41 || s.Std.Missed > 1.42 {
		t.Errorf("std missed = %v, want ~1.414", s.Std.Missed)
	}
	if s.Std.FalseAlarms != 0 {
		t.Errorf("std false alarms = %v, want 0", s.Std.FalseAlarms)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil)
	if s.Trials != 0 || s.Mean.Total() != 0 {
		t.Errorf("empty summarize = %+v, want zero value", s)
	}
}

package eval

import (
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/noisebench/noisebench/internal/model"
	"github.com/noisebench/noisebench/internal/simulate"
)

// Params controls the Monte Carlo train/evaluate loop.
type Params struct {
	// Trials is the number of generate/split/fit/predict repetitions.
	Trials int
	// TestFraction is the share of noise-free rows held out per trial.
	TestFraction float64
	// Seed makes the loop reproducible.
	Seed uint64
	// Forest holds the classifier hyperparameters.
	Forest model.ForestParams
}

// Summary aggregates confusion counts across trials.
type Summary struct {
	Trials int
	// Mean and Std are the per-field mean and sample standard deviation
	// of the trial confusions.
	Mean Confusion
	Std  Confusion
	// PerTrial holds the raw tallies, one per trial.
	PerTrial []Confusion
}

// Run executes the Monte Carlo loop for one noise model: each trial
// generates a fresh dataset, splits it (noisy rows never reach the test
// side), fits a forest on the training split, predicts the test split,
// and tallies the confusion. Datasets are discarded after tallying.
func Run(sim simulate.Params, counts []int, noise simulate.NoiseModel, p Params) Summary {
	rng := rand.New(rand.NewSource(p.Seed))
	classes := sim.Classes()

	per := make([]Confusion, 0, p.Trials)
	for t := 0; t < p.Trials; t++ {
		gen := simulate.New(sim, rng.Uint64())
		ds := gen.Assemble(counts, noise)

		train, test := Split(ds, p.TestFraction, rng)
		if len(train) == 0 || len(test) == 0 {
			slog.Warn("eval: degenerate split, skipping trial",
				"trial", t, "train", len(train), "test", len(test))
			continue
		}

		xs := make([][]float64, len(train))
		ys := make([]int, len(train))
		for i, s := range train {
			xs[i] = s.Values
			ys[i] = s.Label
		}
		forest := model.FitForest(xs, ys, classes, p.Forest, rng.Uint64())

		var c Confusion
		for _, s := range test {
			c.Record(s.Label, forest.Predict(s.Values))
		}
		per = append(per, c)
	}

	return summarize(per)
}

// confusionFields enumerates the aggregated counters so summarize stays
// in sync with the Confusion struct.
var confusionFields = []struct {
	get func(Confusion) float64
	set func(*Confusion, float64)
}{
	{func(c Confusion) float64 { return c.Missed }, func(c *Confusion, v float64) { c.Missed = v }},
	{func(c Confusion) float64 { return c.FalseAlarms }, func(c *Confusion, v float64) { c.FalseAlarms = v }},
	{func(c Confusion) float64 { return c.WrongIssue }, func(c *Confusion, v float64) { c.WrongIssue = v }},
	{func(c Confusion) float64 { return c.CorrectAlarms }, func(c *Confusion, v float64) { c.CorrectAlarms = v }},
	{func(c Confusion) float64 { return c.CorrectNormal }, func(c *Confusion, v float64) { c.CorrectNormal = v }},
}

// summarize computes the per-field mean and standard deviation across trials.
func summarize(per []Confusion) Summary {
	s := Summary{Trials: len(per), PerTrial: per}
	if len(per) == 0 {
		return s
	}

	series := make([]float64, len(per))
	for _, f := range confusionFields {
		for i, c := range per {
			series[i] = f.get(c)
		}
		f.set(&s.Mean, stat.Mean(series, nil))
		if len(series) > 1 {
			f.set(&s.Std, stat.StdDev(series, nil))
		}
	}
	return s
}

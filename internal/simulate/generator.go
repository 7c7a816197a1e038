package simulate

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Params describes the synthetic sensor population.
type Params struct {
	// Days is the length of every stability sequence.
	Days int

	// NormalModes are the two operating means healthy machines settle on.
	NormalModes [2]float64

	// NormalSigma is the day-to-day spread around the operating mean.
	NormalSigma float64

	// Issues holds one fault signature per issue type, in label order.
	// Issue type k (label k, 1-based) is Issues[k-1].
	Issues []IssueParams
}

// IssueParams is one issue type's fault signature: a Gaussian abnormal
// regime preceded by a variable number of healthy days.
type IssueParams struct {
	Name      string
	Mean      float64
	Sigma     float64
	PrefixMin int
	PrefixMax int
}

// Classes returns the number of label classes: healthy plus one per issue.
func (p Params) Classes() int { return len(p.Issues) + 1 }

// Sample is one generated machine: a fixed-length stability sequence, the
// recorded label, and whether label noise rewrote that label.
type Sample struct {
	// Values holds one stability measurement per simulated day.
	Values []float64

	// Label is the recorded class: 0 = no issue, 1..K = issue type.
	// When Noisy is true this differs from the class the sequence was
	// actually generated from.
	Label int

	// Noisy marks rows whose label was flipped by noise injection.
	// Noisy rows never appear in evaluation splits.
	Noisy bool
}

// Dataset is an unordered collection of samples.
type Dataset []Sample

// Generator draws synthetic stability sequences from Params.
// The random source is injected through the seed so trials and tests are
// deterministic.
type Generator struct {
	p   Params
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(p Params, seed uint64) *Generator {
	return &Generator{p: p, rng: rand.New(rand.NewSource(seed))}
}

// operatingMean picks one of the two healthy operating modes with equal
// probability. Healthy machines are bimodal: each settles into one duty
// regime for the whole observation window.
func (g *Generator) operatingMean() float64 {
	if g.rng.Float64() < 0.5 {
		return g.p.NormalModes[0]
	}
	return g.p.NormalModes[1]
}

// Normal draws one healthy sequence: Days Gaussian measurements around a
// freshly drawn operating mean. The recorded label is 0 unless the noise
// model flips it.
func (g *Generator) Normal(noise NoiseModel) Sample {
	dist := distuv.Normal{Mu: g.operatingMean(), Sigma: g.p.NormalSigma, Src: g.rng}
	values := make([]float64, g.p.Days)
	for i := range values {
		values[i] = dist.Rand()
	}

	label, noisy := noise.Flip(g.rng, 0)
	return Sample{Values: values, Label: label, Noisy: noisy}
}

// Abnormal draws one sequence for issue type (1..K): a variable-length
// healthy prefix followed by the issue's Gaussian abnormal suffix. The
// recorded label defaults to the issue type unless the noise model flips it.
func (g *Generator) Abnormal(issue int, noise NoiseModel) Sample {
	ip := g.p.Issues[issue-1]

	prefix := ip.PrefixMin
	if ip.PrefixMax > ip.PrefixMin {
		prefix += g.rng.Intn(ip.PrefixMax - ip.PrefixMin + 1)
	}

	healthy := distuv.Normal{Mu: g.operatingMean(), Sigma: g.p.NormalSigma, Src: g.rng}
	faulty := distuv.Normal{Mu: ip.Mean, Sigma: ip.Sigma, Src: g.rng}

	values := make([]float64, g.p.Days)
	for i := range values {
		if i < prefix {
			values[i] = healthy.Rand()
		} else {
			values[i] = faulty.Rand()
		}
	}

	label, noisy := noise.Flip(g.rng, issue)
	return Sample{Values: values, Label: label, Noisy: noisy}
}

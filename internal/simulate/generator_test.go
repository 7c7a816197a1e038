package simulate

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

// testParams is a small but realistic population: 21 days, two healthy
// modes, and one clearly separated issue signature.
func testParams() Params {
	return Params{
		Days:        21,
		NormalModes: [2]float64{70, 85},
		NormalSigma: 4,
		Issues: []IssueParams{
			{Name: "bearing_wear", Mean: 40, Sigma: 5, PrefixMin: 5, PrefixMax: 5},
		},
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func TestNormal_ShapeAndLabel(t *testing.T) {
	g := New(testParams(), 1)
	noise := Clean(2)

	s := g.Normal(noise)
	if len(s.Values) != 21 {
		t.Fatalf("sequence length = %d, want 21", len(s.Values))
	}
	if s.Label != 0 {
		t.Errorf("healthy label = %d, want 0", s.Label)
	}
	if s.Noisy {
		t.Errorf("clean noise model marked sample noisy")
	}
}

func TestNormal_BimodalOperatingMean(t *testing.T) {
	p := testParams()
	g := New(p, 7)
	noise := Clean(2)

	// Each sequence mean should sit near one of the two modes; over many
	// sequences both modes should appear.
	var nearLow, nearHigh int
	for i := 0; i < 200; i++ {
		m := mean(g.Normal(noise).Values)
		switch {
		case almostEqual(m, p.NormalModes[0], 5):
			nearLow++
		case almostEqual(m, p.NormalModes[1], 5):
			nearHigh++
		default:
			t.Fatalf("sequence mean %.2f is near neither mode %v", m, p.NormalModes)
		}
	}
	if nearLow == 0 || nearHigh == 0 {
		t.Errorf("modes not both used: low=%d high=%d", nearLow, nearHigh)
	}
}

func TestAbnormal_PrefixThenFaultSignature(t *testing.T) {
	p := testParams() // prefix fixed at 5 days
	g := New(p, 11)
	noise := Clean(2)

	s := g.Abnormal(1, noise)
	if s.Label != 1 {
		t.Fatalf("abnormal label = %d, want 1", s.Label)
	}
	if len(s.Values) != 21 {
		t.Fatalf("sequence length = %d, want 21", len(s.Values))
	}

	// Suffix should sit near the issue mean (40), far below both healthy
	// modes; the prefix should look healthy.
	suffix := mean(s.Values[5:])
	if !almostEqual(suffix, 40, 6) {
		t.Errorf("suffix mean = %.2f, want near 40", suffix)
	}
	prefix := mean(s.Values[:5])
	if prefix < 55 {
		t.Errorf("prefix mean = %.2f, expected healthy range (>55)", prefix)
	}
}

func TestAbnormal_VariablePrefixStaysInRange(t *testing.T) {
	p := testParams()
	p.Issues[0].PrefixMin = 2
	p.Issues[0].PrefixMax = 10
	p.Issues[0].Mean = 200 // far away so the boundary is unambiguous
	p.Issues[0].Sigma = 1
	g := New(p, 3)
	noise := Clean(2)

	for i := 0; i < 100; i++ {
		s := g.Abnormal(1, noise)
		// Find the first faulty day: values jump to ~200.
		first := -1
		for d, v := range s.Values {
			if v > 150 {
				first = d
				break
			}
		}
		if first < 2 || first > 10 {
			t.Fatalf("fault onset at day %d, want within [2, 10]", first)
		}
	}
}

func TestUniform_FlipRateAndTargets(t *testing.T) {
	const (
		classes = 4
		rate    = 0.3
		n       = 5000
	)
	noise := Uniform(classes, rate)
	rng := rand.New(rand.NewSource(5))

	var flipped int
	targets := make(map[int]int)
	for i := 0; i < n; i++ {
		label, noisy := noise.Flip(rng, 0)
		if noisy != (label != 0) {
			t.Fatalf("noisy flag %v disagrees with label %d", noisy, label)
		}
		if noisy {
			flipped++
			targets[label]++
		}
	}

	got := float64(flipped) / n
	if !almostEqual(got, rate, 0.03) {
		t.Errorf("flip rate = %.3f, want %.3f ±0.03", got, rate)
	}
	// Flips should spread over all other classes.
	for c := 1; c < classes; c++ {
		if targets[c] == 0 {
			t.Errorf("class %d never chosen as flip target", c)
		}
	}
}

func TestClean_NeverFlips(t *testing.T) {
	noise := Clean(3)
	rng := rand.New(rand.NewSource(9))
	for truth := 0; truth < 3; truth++ {
		for i := 0; i < 100; i++ {
			label, noisy := noise.Flip(rng, truth)
			if noisy || label != truth {
				t.Fatalf("Clean flipped %d -> %d", truth, label)
			}
		}
	}
}

func TestNilNoiseModel_RecordsAsIs(t *testing.T) {
	var noise NoiseModel
	rng := rand.New(rand.NewSource(1))
	label, noisy := noise.Flip(rng, 2)
	if label != 2 || noisy {
		t.Errorf("nil model: got (%d, %v), want (2, false)", label, noisy)
	}
}

package simulate

import "golang.org/x/exp/rand"

// NoiseModel holds one categorical relabeling distribution per true class.
// Row c gives the probability of recording class j for a sample whose true
// class is c; each row sums to 1. A nil NoiseModel records labels as-is.
type NoiseModel [][]float64

// Clean returns a NoiseModel that never flips labels.
func Clean(classes int) NoiseModel {
	m := make(NoiseModel, classes)
	for c := range m {
		m[c] = make([]float64, classes)
		m[c][c] = 1
	}
	return m
}

// Uniform returns a NoiseModel where every class keeps its label with
// probability 1-rate and is otherwise relabeled to a uniformly random
// other class.
func Uniform(classes int, rate float64) NoiseModel {
	m := make(NoiseModel, classes)
	for c := range m {
		m[c] = make([]float64, classes)
		for j := range m[c] {
			if j == c {
				m[c][j] = 1 - rate
			} else {
				m[c][j] = rate / float64(classes-1)
			}
		}
	}
	return m
}

// Flip samples the recorded label for a sample whose true class is truth.
// The second return is true when the label was rewritten to another class.
func (n NoiseModel) Flip(rng *rand.Rand, truth int) (int, bool) {
	if n == nil {
		return truth, false
	}

	u := rng.Float64()
	var cum float64
	for j, p := range n[truth] {
		cum += p
		if u < cum {
			return j, j != truth
		}
	}
	// Guard against rows that sum to slightly under 1 from float error.
	return truth, false
}

package model

import (
	"math"

	"golang.org/x/exp/rand"
)

// ForestParams holds the forest hyperparameters.
type ForestParams struct {
	// Trees is the number of bagged trees.
	Trees int
	// MaxDepth and MinLeaf bound every tree (see TreeParams).
	MaxDepth int
	MinLeaf  int
	// SplitFeatures is how many features each split samples;
	// 0 means sqrt(feature count), rounded up.
	SplitFeatures int
}

// A Forest is a bagged ensemble of decision trees. Prediction sums the
// per-tree leaf class distributions and takes the argmax.
type Forest struct {
	Trees   []Tree
	Classes int
}

// FitForest trains p.Trees trees, each on a bootstrap resample of the
// training rows, with per-split feature subsampling.
func FitForest(xs [][]float64, ys []int, classes int, p ForestParams, seed uint64) *Forest {
	rng := rand.New(rand.NewSource(seed))

	splitFeatures := p.SplitFeatures
	if splitFeatures == 0 {
		splitFeatures = int(math.Ceil(math.Sqrt(float64(len(xs[0])))))
	}
	tp := TreeParams{
		MaxDepth:      p.MaxDepth,
		MinLeaf:       p.MinLeaf,
		SplitFeatures: splitFeatures,
	}

	f := &Forest{Classes: classes, Trees: make([]Tree, 0, p.Trees)}

	n := len(xs)
	bootXs := make([][]float64, n)
	bootYs := make([]int, n)

	for t := 0; t < p.Trees; t++ {
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			bootXs[i] = xs[j]
			bootYs[i] = ys[j]
		}
		tree := FitTree(bootXs, bootYs, classes, tp, rng)
		f.Trees = append(f.Trees, *tree)
	}
	return f
}

// Predict returns the majority-vote class for x. Votes are the summed leaf
// class distributions of all trees; ties resolve to the lower class index,
// which biases toward "no issue" on a dead heat.
func (f *Forest) Predict(x []float64) int {
	votes := make([]float64, f.Classes)
	for i := range f.Trees {
		for c, p := range f.Trees[i].Evaluate(x) {
			votes[c] += p
		}
	}

	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return best
}

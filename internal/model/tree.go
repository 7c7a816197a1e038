package model

import (
	"sort"

	"golang.org/x/exp/rand"
)

// A Node represents a splitting decision of the form
// "x[FeatureIndex] < Threshold ?" in a decision tree.
type Node struct {
	// FeatureIndex indicates which feature is used in this splitting decision.
	FeatureIndex int
	// Threshold is the cutoff value between the left and right subtrees.
	Threshold float64
	// LeftChild is the node index of the left subtree, or the leaf index
	// into Dist when LeftIsLeaf is set.
	LeftChild  int
	LeftIsLeaf bool
	// RightChild is the node index of the right subtree, or the leaf index
	// into Dist when RightIsLeaf is set.
	RightChild  int
	RightIsLeaf bool
}

// A Tree is a multiclass CART decision tree stored as a flat node array.
// Leaf i holds the normalised class distribution of the training rows that
// reached it in Dist[i]. An empty Nodes slice means the root itself is a
// leaf (Dist[0]).
type Tree struct {
	Nodes       []Node
	Dist        [][]float64
	Classes     int
	FeatureSize int
}

// TreeParams bounds tree growth.
type TreeParams struct {
	// MaxDepth is the maximum number of splits on any root-to-leaf path.
	MaxDepth int
	// MinLeaf is the minimum number of training rows in any leaf.
	MinLeaf int
	// SplitFeatures is how many features are sampled per split;
	// 0 means all features are considered.
	SplitFeatures int
}

// FitTree grows a tree on the given feature vectors and class labels using
// Gini impurity. rng drives per-split feature sampling; pass a fixed-seed
// source for reproducible trees.
func FitTree(xs [][]float64, ys []int, classes int, p TreeParams, rng *rand.Rand) *Tree {
	t := &Tree{Classes: classes, FeatureSize: len(xs[0])}
	b := &treeBuilder{t: t, xs: xs, ys: ys, p: p, rng: rng}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	b.build(idx, 0)
	return t
}

// Bin drops a feature vector down the tree and returns the index of the
// leaf it ends up in. Child indices always point forward in the node
// array, so traversal terminates.
func (t *Tree) Bin(x []float64) int {
	if len(x) != t.FeatureSize {
		panic("feature vector had incorrect length")
	}
	if len(t.Nodes) == 0 {
		return 0
	}
	cur := t.Nodes[0]
	for {
		if x[cur.FeatureIndex] < cur.Threshold {
			if cur.LeftIsLeaf {
				return cur.LeftChild
			}
			cur = t.Nodes[cur.LeftChild]
		} else {
			if cur.RightIsLeaf {
				return cur.RightChild
			}
			cur = t.Nodes[cur.RightChild]
		}
	}
}

// Evaluate returns the class distribution of the leaf x ends up in.
func (t *Tree) Evaluate(x []float64) []float64 {
	return t.Dist[t.Bin(x)]
}

// treeBuilder holds the shared state of one FitTree call.
type treeBuilder struct {
	t   *Tree
	xs  [][]float64
	ys  []int
	p   TreeParams
	rng *rand.Rand
}

// build grows the subtree over the rows in idx and returns either
// (leafIndex, true) or (nodeIndex, false).
func (b *treeBuilder) build(idx []int, depth int) (int, bool) {
	counts := b.classCounts(idx)

	if depth >= b.p.MaxDepth || len(idx) < 2*b.p.MinLeaf || isPure(counts) {
		return b.leaf(counts, len(idx)), true
	}

	feat, thresh, ok := b.bestSplit(idx, counts)
	if !ok {
		return b.leaf(counts, len(idx)), true
	}

	// Reserve the node slot before recursing so child indices point forward.
	nodeIdx := len(b.t.Nodes)
	b.t.Nodes = append(b.t.Nodes, Node{FeatureIndex: feat, Threshold: thresh})

	var left, right []int
	for _, i := range idx {
		if b.xs[i][feat] < thresh {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	lc, ll := b.build(left, depth+1)
	rc, rl := b.build(right, depth+1)

	n := &b.t.Nodes[nodeIdx]
	n.LeftChild, n.LeftIsLeaf = lc, ll
	n.RightChild, n.RightIsLeaf = rc, rl
	return nodeIdx, false
}

// leaf appends a normalised class distribution and returns its index.
func (b *treeBuilder) leaf(counts []float64, n int) int {
	dist := make([]float64, len(counts))
	for c, v := range counts {
		dist[c] = v / float64(n)
	}
	b.t.Dist = append(b.t.Dist, dist)
	return len(b.t.Dist) - 1
}

// bestSplit scans the sampled features for the split with the lowest
// weighted Gini impurity. Returns ok=false when no split improves on the
// parent impurity or satisfies the MinLeaf constraint.
func (b *treeBuilder) bestSplit(idx []int, parentCounts []float64) (int, float64, bool) {
	n := len(idx)
	const minGain = 1e-9
	bestScore := gini(parentCounts, n) - minGain
	bestFeat, bestThresh := -1, 0.0

	order := make([]int, n)
	leftCounts := make([]float64, b.t.Classes)
	rightCounts := make([]float64, b.t.Classes)

	for _, feat := range b.splitFeatures() {
		copy(order, idx)
		sort.Slice(order, func(i, j int) bool {
			return b.xs[order[i]][feat] < b.xs[order[j]][feat]
		})

		for c := range leftCounts {
			leftCounts[c] = 0
			rightCounts[c] = parentCounts[c]
		}

		for pos := 1; pos < n; pos++ {
			moved := b.ys[order[pos-1]]
			leftCounts[moved]++
			rightCounts[moved]--

			prev, next := b.xs[order[pos-1]][feat], b.xs[order[pos]][feat]
			if prev == next {
				continue // not a real boundary
			}
			if pos < b.p.MinLeaf || n-pos < b.p.MinLeaf {
				continue
			}

			score := (float64(pos)*gini(leftCounts, pos) +
				float64(n-pos)*gini(rightCounts, n-pos)) / float64(n)
			if score < bestScore {
				bestScore = score
				bestFeat = feat
				thresh := (prev + next) / 2
				// The midpoint of adjacent floats can round down to
				// prev, which would leave the left partition empty.
				if thresh <= prev {
					thresh = next
				}
				bestThresh = thresh
			}
		}
	}

	if bestFeat < 0 {
		return 0, 0, false
	}
	return bestFeat, bestThresh, true
}

// splitFeatures returns the feature indices considered for this split:
// all of them, or a random subset of size SplitFeatures.
func (b *treeBuilder) splitFeatures() []int {
	k := b.p.SplitFeatures
	if k <= 0 || k >= b.t.FeatureSize {
		all := make([]int, b.t.FeatureSize)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return b.rng.Perm(b.t.FeatureSize)[:k]
}

func (b *treeBuilder) classCounts(idx []int) []float64 {
	counts := make([]float64, b.t.Classes)
	for _, i := range idx {
		counts[b.ys[i]]++
	}
	return counts
}

// gini computes the Gini impurity of a class-count vector over n rows.
func gini(counts []float64, n int) float64 {
	impurity := 1.0
	for _, c := range counts {
		p := c / float64(n)
		impurity -= p * p
	}
	return impurity
}

// isPure reports whether all rows belong to a single class.
func isPure(counts []float64) bool {
	var nonzero int
	for _, c := range counts {
		if c > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

// Package model implements the study classifier: a multiclass CART
// decision tree stored as a flat node array (tree.go) and a bagged forest
// over it (forest.go). Trees are grown with Gini impurity under depth and
// leaf-size bounds; forests add bootstrap resampling and per-split feature
// subsampling. The package has no opinion about where feature vectors come
// from — callers pass [][]float64 plus int labels.
package model

// Package simulate generates synthetic time-series stability data with
// controllable label noise.
//
// generator.go draws healthy sequences (Gaussian around one of two
// operating modes) and abnormal sequences (a healthy prefix followed by a
// per-issue Gaussian fault signature). noise.go models label noise as a
// per-class categorical relabeling distribution; flipped rows carry a
// Noisy flag so evaluation can exclude them from test splits. dataset.go
// concatenates per-class generations into one dataset.
//
// All sampling goes through an injected seed so trials are reproducible.
package simulate

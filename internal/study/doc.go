// Package study orchestrates the noise sweep: for each configured noise
// level it runs the Monte Carlo evaluation loop, rescales the averaged
// counts to the alarm budget, and prices them with the cost model
// (study.go). history.go keeps the latest run per scenario so watch mode
// can report deltas between consecutive runs.
package study

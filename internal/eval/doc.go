// Package eval runs the Monte Carlo train/evaluate loop.
//
// split.go holds the train/test partitioner; its one hard rule is that
// noise-injected rows never enter the test split, so evaluation is always
// against true labels. confusion.go tallies operational outcomes (missed
// issues, false alarms, wrong-issue diagnoses). trial.go repeats
// generate → split → fit → predict for a configured number of trials and
// aggregates per-trial counts into means and standard deviations.
package eval

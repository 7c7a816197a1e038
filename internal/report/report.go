package report

import (
	"time"

	"github.com/noisebench/noisebench/internal/eval"
)

// Level is the reported outcome of one noise level in the sweep.
type Level struct {
	// NoiseRate is the label flip probability this level was run at.
	NoiseRate float64

	// Mean and Std aggregate the raw per-trial confusion counts.
	Mean eval.Confusion
	Std  eval.Confusion

	// Scaled is Mean rescaled so predicted alarms total the alarm budget.
	Scaled eval.Confusion

	// Cost is the illustrative monetary cost of Scaled.
	Cost float64
}

// Run is one finished study: the full noise sweep plus the parameters a
// reader needs to interpret it.
type Run struct {
	Scenario    string
	StartedAt   time.Time
	Trials      int
	AlarmBudget float64
	Levels      []Level
}

// RescaleToBudget scales c so its predicted-alarm total equals budget.
// This models an operations team that investigates a fixed number of
// alarms per period: counts become "outcomes per budget alarms" and are
// comparable across noise levels with different alarm volumes. A
// confusion with no alarms is returned unchanged.
func RescaleToBudget(c eval.Confusion, budget float64) eval.Confusion {
	alarms := c.Alarms()
	if alarms <= 0 || budget <= 0 {
		return c
	}
	return c.Scale(budget / alarms)
}

// CostModel converts confusion counts into an illustrative monetary cost.
type CostModel struct {
	MissedIssue float64
	FalseAlarm  float64
	WrongIssue  float64
}

// Of returns the total cost of the given counts.
func (m CostModel) Of(c eval.Confusion) float64 {
	return c.Missed*m.MissedIssue +
		c.FalseAlarms*m.FalseAlarm +
		c.WrongIssue*m.WrongIssue
}

package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteSummary renders the sweep as a human-readable table: raw averaged
// counts, operational rates, and the budget-rescaled cost per noise level.
func WriteSummary(w io.Writer, run *Run) error {
	fmt.Fprintf(w, "scenario %q — %d trials per level, alarm budget %.0f\n\n",
		run.Scenario, run.Trials, run.AlarmBudget)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "noise\tmissed\tfalse\twrong\tcorrect\tmiss%\tfalse%\tmissed/budget\tcost")

	for _, lv := range run.Levels {
		fmt.Fprintf(tw, "%.2f\t%.1f ±%.1f\t%.1f ±%.1f\t%.1f ±%.1f\t%.1f\t%.1f\t%.1f\t%.2f\t%.0f\n",
			lv.NoiseRate,
			lv.Mean.Missed, lv.Std.Missed,
			lv.Mean.FalseAlarms, lv.Std.FalseAlarms,
			lv.Mean.WrongIssue, lv.Std.WrongIssue,
			lv.Mean.CorrectAlarms+lv.Mean.CorrectNormal,
			lv.Mean.MissRate(),
			lv.Mean.FalseAlarmRate(),
			lv.Scaled.Missed,
			lv.Cost,
		)
	}
	return tw.Flush()
}

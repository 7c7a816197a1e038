package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SaveCurves renders the degradation curves as PNGs under dir:
// counts.png plots the budget-rescaled outcome counts against the noise
// rate, cost.png plots the illustrative cost.
func SaveCurves(dir string, run *Run) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report: create plot dir: %w", err)
	}

	missed := make(plotter.XYs, len(run.Levels))
	falseAlarms := make(plotter.XYs, len(run.Levels))
	wrong := make(plotter.XYs, len(run.Levels))
	cost := make(plotter.XYs, len(run.Levels))
	for i, lv := range run.Levels {
		missed[i] = plotter.XY{X: lv.NoiseRate, Y: lv.Scaled.Missed}
		falseAlarms[i] = plotter.XY{X: lv.NoiseRate, Y: lv.Scaled.FalseAlarms}
		wrong[i] = plotter.XY{X: lv.NoiseRate, Y: lv.Scaled.WrongIssue}
		cost[i] = plotter.XY{X: lv.NoiseRate, Y: lv.Cost}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Outcomes per %.0f alarms — %s", run.AlarmBudget, run.Scenario)
	p.X.Label.Text = "label noise rate"
	p.Y.Label.Text = "count per budget"
	if err := plotutil.AddLinePoints(p,
		"missed issues", missed,
		"false alarms", falseAlarms,
		"wrong issue", wrong,
	); err != nil {
		return fmt.Errorf("report: build counts plot: %w", err)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(dir, "counts.png")); err != nil {
		return fmt.Errorf("report: save counts plot: %w", err)
	}

	pc := plot.New()
	pc.Title.Text = fmt.Sprintf("Illustrative cost — %s", run.Scenario)
	pc.X.Label.Text = "label noise rate"
	pc.Y.Label.Text = "cost"
	if err := plotutil.AddLinePoints(pc, "cost", cost); err != nil {
		return fmt.Errorf("report: build cost plot: %w", err)
	}
	if err := pc.Save(6*vg.Inch, 4*vg.Inch, filepath.Join(dir, "cost.png")); err != nil {
		return fmt.Errorf("report: save cost plot: %w", err)
	}
	return nil
}

package report

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// WriteMetrics encodes the aggregated study metrics in Prometheus text
// exposition format: one gauge family per counter, one sample per noise
// level, labelled with the scenario and noise rate. The output is meant
// to be dropped into a textfile-collector directory so study results show
// up next to production dashboards.
func WriteMetrics(w io.Writer, run *Run) error {
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range metricFamilies(run) {
		if err := enc.Encode(fam); err != nil {
			return fmt.Errorf("report: encode %s: %w", fam.GetName(), err)
		}
	}
	return nil
}

// metricFamilies builds the exported gauge families from a finished run.
func metricFamilies(run *Run) []*dto.MetricFamily {
	type family struct {
		name string
		help string
		get  func(Level) float64
	}
	families := []family{
		{"noisebench_missed_issues_mean", "Mean missed issues per test split.",
			func(lv Level) float64 { return lv.Mean.Missed }},
		{"noisebench_false_alarms_mean", "Mean false alarms per test split.",
			func(lv Level) float64 { return lv.Mean.FalseAlarms }},
		{"noisebench_wrong_issue_mean", "Mean wrong-issue diagnoses per test split.",
			func(lv Level) float64 { return lv.Mean.WrongIssue }},
		{"noisebench_missed_issues_per_budget", "Missed issues rescaled to the alarm budget.",
			func(lv Level) float64 { return lv.Scaled.Missed }},
		{"noisebench_false_alarms_per_budget", "False alarms rescaled to the alarm budget.",
			func(lv Level) float64 { return lv.Scaled.FalseAlarms }},
		{"noisebench_cost", "Illustrative cost of the budget-rescaled outcomes.",
			func(lv Level) float64 { return lv.Cost }},
	}

	out := make([]*dto.MetricFamily, 0, len(families))
	for _, f := range families {
		mf := &dto.MetricFamily{
			Name: proto.String(f.name),
			Help: proto.String(f.help),
			Type: dto.MetricType_GAUGE.Enum(),
		}
		for _, lv := range run.Levels {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Label: []*dto.LabelPair{
					{Name: proto.String("scenario"), Value: proto.String(run.Scenario)},
					{Name: proto.String("noise_rate"), Value: proto.String(fmt.Sprintf("%.2f", lv.NoiseRate))},
				},
				Gauge: &dto.Gauge{Value: proto.Float64(f.get(lv))},
			})
		}
		out = append(out, mf)
	}
	return out
}

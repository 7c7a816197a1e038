package gate

import (
	"fmt"
	"log/slog"

	"github.com/noisebench/noisebench/internal/config"
	"github.com/noisebench/noisebench/internal/report"
)

// Violation records one gate rule firing on one noise level.
type Violation struct {
	Rule      string
	Severity  string
	Scenario  string
	NoiseRate float64
	Value     float64
	Message   string
}

// Evaluate tests every configured rule against every noise level of the
// finished run. Violations are logged as they are found; the caller
// decides what a critical violation means for the process exit code.
func Evaluate(rules []config.GateRule, run *report.Run) []Violation {
	var out []Violation
	for _, rule := range rules {
		sev := rule.Severity
		if sev == "" {
			sev = "warning"
		}
		for _, lv := range run.Levels {
			fires, value := evalCondition(rule.Condition, lv)
			if !fires {
				continue
			}
			v := Violation{
				Rule:      rule.Name,
				Severity:  sev,
				Scenario:  run.Scenario,
				NoiseRate: lv.NoiseRate,
				Value:     value,
				Message: fmt.Sprintf("[%s] %s fired at noise %.2f — %s = %.2f",
					sev, rule.Name, lv.NoiseRate, rule.Condition, value),
			}
			out = append(out, v)

			slog.Warn("gate fired",
				"rule", rule.Name,
				"severity", sev,
				"scenario", run.Scenario,
				"noise_rate", lv.NoiseRate,
				"value", value,
			)
		}
	}
	return out
}

// AnyCritical reports whether the violations include a critical one.
func AnyCritical(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == "critical" {
			return true
		}
	}
	return false
}

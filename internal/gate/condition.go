package gate

import (
	"strconv"
	"strings"

	"github.com/noisebench/noisebench/internal/report"
)

// evalCondition evaluates a gate condition string against one noise
// level's results.
//
// Supported expressions (field operator value):
//
//	missed_per_budget > 2
//	false_per_budget > 40
//	wrong_per_budget > 10
//	cost > 150000
//	miss_rate > 5
//	false_alarm_rate > 8
//	noise_rate >= 0.1
//
// miss_rate and false_alarm_rate are percentages (0–100). Returns
// (fires bool, triggering value float64); (false, 0) if the expression
// cannot be parsed or the field is unknown.
func evalCondition(cond string, lv report.Level) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}

	v, ok := numericField(field, lv)
	if !ok {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the level results.
func numericField(field string, lv report.Level) (float64, bool) {
	switch field {
	case "missed_per_budget":
		return lv.Scaled.Missed, true
	case "false_per_budget":
		return lv.Scaled.FalseAlarms, true
	case "wrong_per_budget":
		return lv.Scaled.WrongIssue, true
	case "cost":
		return lv.Cost, true
	case "miss_rate":
		return lv.Mean.MissRate(), true
	case "false_alarm_rate":
		return lv.Mean.FalseAlarmRate(), true
	case "noise_rate":
		return lv.NoiseRate, true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}

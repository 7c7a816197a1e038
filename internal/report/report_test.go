package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/noisebench/noisebench/internal/eval"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRescaleToBudget(t *testing.T) {
	c := eval.Confusion{
		Missed:        5,
		FalseAlarms:   20,
		WrongIssue:    10,
		CorrectAlarms: 20, // alarms total = 50
		CorrectNormal: 45,
	}

	s := RescaleToBudget(c, 100) // factor 2
	if s.Alarms() != 100 {
		t.Errorf("scaled alarms = %v, want 100", s.Alarms())
	}
	if s.Missed != 10 || s.FalseAlarms != 40 || s.WrongIssue != 20 {
		t.Errorf("scaled counts = %+v, want doubled inputs", s)
	}
}

func TestRescaleToBudget_NoAlarms(t *testing.T) {
	c := eval.Confusion{Missed: 3, CorrectNormal: 97}
	s := RescaleToBudget(c, 100)
	if s != c {
		t.Errorf("no-alarm confusion was rescaled: %+v", s)
	}
}

func TestCostModel_Of(t *testing.T) {
	m := CostModel{MissedIssue: 50000, FalseAlarm: 1500, WrongIssue: 8000}
	c := eval.Confusion{Missed: 2, FalseAlarms: 10, WrongIssue: 3}

	want := 2*50000.0 + 10*1500.0 + 3*8000.0
	if got := m.Of(c); !almostEqual(got, want, 1e-9) {
		t.Errorf("cost = %v, want %v", got, want)
	}
}

func TestCostModel_ScalesLinearly(t *testing.T) {
	m := CostModel{MissedIssue: 100, FalseAlarm: 10, WrongIssue: 1}
	c := eval.Confusion{Missed: 1, FalseAlarms: 1, WrongIssue: 1, CorrectAlarms: 7}

	base := m.Of(c)
	doubled := m.Of(RescaleToBudget(c, 2*c.Alarms()))
	if !almostEqual(doubled, 2*base, 1e-9) {
		t.Errorf("doubling the budget should double the cost: %v vs %v", doubled, base)
	}
}

func testRun() *Run {
	return &Run{
		Scenario:    "bench",
		StartedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Trials:      10,
		AlarmBudget: 100,
		Levels: []Level{
			{
				NoiseRate: 0,
				Mean:      eval.Confusion{Missed: 1, FalseAlarms: 5, CorrectAlarms: 20, CorrectNormal: 70},
				Scaled:    eval.Confusion{Missed: 4, FalseAlarms: 20, CorrectAlarms: 80},
				Cost:      230000,
			},
			{
				NoiseRate: 0.1,
				Mean:      eval.Confusion{Missed: 4, FalseAlarms: 9, WrongIssue: 2, CorrectAlarms: 14, CorrectNormal: 66},
				Scaled:    eval.Confusion{Missed: 16, FalseAlarms: 36, WrongIssue: 8, CorrectAlarms: 56},
				Cost:      918000,
			},
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, testRun()); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"bench", "0.00", "0.10", "230000", "918000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

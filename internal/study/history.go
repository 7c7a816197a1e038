package study

import (
	"sort"
	"sync"
	"time"

	"github.com/noisebench/noisebench/internal/report"
)

// Entry is a finished run together with the time it was recorded.
type Entry struct {
	Run       *report.Run
	UpdatedAt time.Time
}

// History is a thread-safe in-memory store of the latest run per
// scenario. Watch mode uses it to log metric deltas between consecutive
// runs of the same scenario.
type History struct {
	mu   sync.RWMutex
	runs map[string]*Entry
	now  func() time.Time // injectable for deterministic tests
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{
		runs: make(map[string]*Entry),
		now:  time.Now,
	}
}

// Put records run as the latest result for its scenario and returns the
// run it replaced, or nil on first sight of the scenario.
// Callers must not modify run after calling Put.
func (h *History) Put(run *report.Run) *report.Run {
	h.mu.Lock()
	defer h.mu.Unlock()

	var prev *report.Run
	if e, ok := h.runs[run.Scenario]; ok {
		prev = e.Run
	}
	h.runs[run.Scenario] = &Entry{Run: run, UpdatedAt: h.now()}
	return prev
}

// Get returns the latest Entry for the scenario and whether one exists.
func (h *History) Get(scenario string) (*Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.runs[scenario]
	return e, ok
}

// List returns all entries ordered by scenario name.
func (h *History) List() []*Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Entry, 0, len(h.runs))
	for _, e := range h.runs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Run.Scenario < out[j].Run.Scenario
	})
	return out
}

// Delta summarises how the final noise level moved between two runs of
// the same scenario. Zero deltas are reported as-is; levels are matched
// by position, so comparing runs with different sweeps returns ok=false.
type Delta struct {
	NoiseRate       float64
	CostChange      float64
	MissedChange    float64 // budget-rescaled
	FalseAlarmDelta float64 // budget-rescaled
}

// DeltaOf compares the last noise level of curr against prev.
func DeltaOf(prev, curr *report.Run) (Delta, bool) {
	if prev == nil || len(prev.Levels) != len(curr.Levels) || len(curr.Levels) == 0 {
		return Delta{}, false
	}
	last := len(curr.Levels) - 1
	p, c := prev.Levels[last], curr.Levels[last]
	if p.NoiseRate != c.NoiseRate {
		return Delta{}, false
	}
	return Delta{
		NoiseRate:       c.NoiseRate,
		CostChange:      c.Cost - p.Cost,
		MissedChange:    c.Scaled.Missed - p.Scaled.Missed,
		FalseAlarmDelta: c.Scaled.FalseAlarms - p.Scaled.FalseAlarms,
	}, true
}

package sim

import (
	"sort"
	"time"
)

// AlignTolerance bounds the window for pairing a solar sample with a net
// load sample. The window is open: only samples strictly closer than one
// hour qualify. For co-located hourly series this makes the same hour the
// first qualifying point instead of the preceding one.
const AlignTolerance = time.Hour

type AlignPolicy int

const (
	// PolicyFirstWithinTolerance returns the earliest in-window load point
	// in sequence order: the first hit wins even when a later point is
	// closer in absolute time. Aggregate numbers depend on this, so it
	// stays the default.
	PolicyFirstWithinTolerance AlignPolicy = iota
	// PolicyNearestWithinTolerance returns the in-window load point
	// closest in absolute time to the target.
	PolicyNearestWithinTolerance
)

func (p AlignPolicy) String() string {
	switch p {
	case PolicyFirstWithinTolerance:
		return "first"
	case PolicyNearestWithinTolerance:
		return "nearest"
	default:
		return "unknown"
	}
}

// Aligner matches timestamps in one series against another within
// AlignTolerance. Lookups are O(log n) over the sorted series.
type Aligner struct {
	series    Series
	tolerance time.Duration
	policy    AlignPolicy
}

func NewAligner(series Series, policy AlignPolicy) *Aligner {
	return &Aligner{series: series, tolerance: AlignTolerance, policy: policy}
}

// Align returns the load point matched to target, or false when no point
// lies within the tolerance window. An unmatched target is a normal
// result, callers exclude that sample and move on.
func (a *Aligner) Align(target time.Time) (TimePoint, bool) {
	n := a.series.Len()
	if n == 0 {
		return TimePoint{}, false
	}

	windowStart := target.Add(-a.tolerance)
	idx := sort.Search(n, func(i int) bool {
		return a.series.At(i).When.After(windowStart)
	})
	if idx >= n {
		return TimePoint{}, false
	}

	first := a.series.At(idx)
	if first.When.Sub(target) >= a.tolerance {
		return TimePoint{}, false
	}
	if a.policy == PolicyFirstWithinTolerance {
		return first, true
	}

	best := first
	bestDiff := absDuration(first.When.Sub(target))
	for i := idx + 1; i < n; i++ {
		p := a.series.At(i)
		if p.When.Sub(target) >= a.tolerance {
			break
		}
		if d := absDuration(p.When.Sub(target)); d < bestDiff {
			best, bestDiff = p, d
		}
	}
	return best, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

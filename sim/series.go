package sim

import (
	"sort"
	"time"

	"github.com/angas/gridhost-go/types"
)

// TimePoint is a single sample in an hourly series.
type TimePoint struct {
	When  time.Time
	Value float64
}

// Series is an immutable ordered sequence of samples with strictly
// ascending timestamps. It is used both for net load (MW, signed so that
// negative values mean export to the upstream grid) and for solar output
// per unit of installed DC nameplate capacity. Gaps between hours are
// permitted.
type Series struct {
	points []TimePoint
}

// NewSeries copies points into a Series, sorting them by timestamp.
// Callers are expected to hand over finite values with unique timestamps,
// that is the ingestion layer's responsibility.
func NewSeries(points []TimePoint) Series {
	cp := make([]TimePoint, len(points))
	copy(cp, points)
	sort.Slice(cp, func(i, j int) bool { return cp[i].When.Before(cp[j].When) })
	return Series{points: cp}
}

// FromSeriesPoints builds a Series from hour-keyed storage rows.
func FromSeriesPoints(points []types.SeriesPoint) Series {
	tps := make([]TimePoint, len(points))
	for i, p := range points {
		tps[i] = TimePoint{When: p.Hour.Time(), Value: p.Value}
	}
	return NewSeries(tps)
}

func (s Series) Len() int {
	return len(s.points)
}

func (s Series) At(i int) TimePoint {
	return s.points[i]
}

// Points returns a copy of the samples, safe to mutate.
func (s Series) Points() []TimePoint {
	cp := make([]TimePoint, len(s.points))
	copy(cp, s.points)
	return cp
}

// Span returns the first and last timestamp, or false for an empty series.
func (s Series) Span() (time.Time, time.Time, bool) {
	if len(s.points) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.points[0].When, s.points[len(s.points)-1].When, true
}

package sim

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func hourly(start time.Time, values ...float64) Series {
	points := make([]TimePoint, len(values))
	for i, v := range values {
		points[i] = TimePoint{When: start.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return NewSeries(points)
}

func TestAlignToleranceBoundary(t *testing.T) {
	load := NewSeries([]TimePoint{{When: t0, Value: 1.0}})

	tests := []struct {
		name    string
		offset  time.Duration
		matched bool
	}{
		{"just inside window", 3599999 * time.Millisecond, true},
		{"exactly one hour away", 3600000 * time.Millisecond, false},
		{"just outside window", 3600001 * time.Millisecond, false},
		{"just inside window, before", -3599999 * time.Millisecond, true},
		{"just outside window, before", -3600001 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aligner := NewAligner(load, PolicyFirstWithinTolerance)
			_, ok := aligner.Align(t0.Add(tt.offset))
			if ok != tt.matched {
				t.Errorf("Align() at offset %v: matched=%v, wanted %v", tt.offset, ok, tt.matched)
			}
		})
	}
}

func TestAlignFirstWithinToleranceIsNotNearest(t *testing.T) {
	// Two load points in the window; the earlier one is further away in
	// absolute time but must still win under the first-match policy.
	load := NewSeries([]TimePoint{
		{When: t0, Value: 1.0},
		{When: t0.Add(70 * time.Minute), Value: 2.0},
	})
	target := t0.Add(59 * time.Minute)

	first := NewAligner(load, PolicyFirstWithinTolerance)
	got, ok := first.Align(target)
	if !ok {
		t.Fatal("Align() expected a match")
	}
	if got.Value != 1.0 {
		t.Errorf("first-match policy returned value %v, wanted the earlier point (1.0)", got.Value)
	}

	nearest := NewAligner(load, PolicyNearestWithinTolerance)
	got, ok = nearest.Align(target)
	if !ok {
		t.Fatal("Align() expected a match")
	}
	if got.Value != 2.0 {
		t.Errorf("nearest-match policy returned value %v, wanted the closer point (2.0)", got.Value)
	}
}

func TestAlignEmptySeries(t *testing.T) {
	aligner := NewAligner(NewSeries(nil), PolicyFirstWithinTolerance)
	if _, ok := aligner.Align(t0); ok {
		t.Error("Align() on empty series expected no match")
	}
}

func TestAlignExactTimestamp(t *testing.T) {
	load := hourly(t0, 1, 2, 3)
	aligner := NewAligner(load, PolicyFirstWithinTolerance)
	got, ok := aligner.Align(t0.Add(2 * time.Hour))
	if !ok {
		t.Fatal("Align() expected a match")
	}
	// The preceding hour sits exactly on the open window's edge, so the
	// exact hit is the first qualifying point.
	if got.Value != 3 {
		t.Errorf("Align() returned value %v, wanted 3", got.Value)
	}
}

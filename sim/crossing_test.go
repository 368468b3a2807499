package sim

import (
	"testing"
	"time"
)

func TestZeroCrossingsMidpoint(t *testing.T) {
	points := []TimePoint{
		{When: t0, Value: 1.0},
		{When: t0.Add(time.Hour), Value: -1.0},
	}

	out := ZeroCrossings(points)
	if len(out) != 3 {
		t.Fatalf("ZeroCrossings() returned %d points, wanted 3", len(out))
	}

	if out[0].Value != nil {
		t.Error("positive left point should be a gap")
	}

	cross := out[1]
	if !cross.When.Equal(t0.Add(30 * time.Minute)) {
		t.Errorf("crossing at %v, wanted %v", cross.When, t0.Add(30*time.Minute))
	}
	if cross.Value == nil || *cross.Value != 0 {
		t.Errorf("crossing value = %v, wanted 0", cross.Value)
	}

	if out[2].Value == nil || *out[2].Value != -1.0 {
		t.Errorf("final point = %v, wanted -1.0", out[2].Value)
	}
}

func TestZeroCrossingsAsymmetric(t *testing.T) {
	// Rising from -1 to 3 crosses at a quarter of the interval.
	points := []TimePoint{
		{When: t0, Value: -1.0},
		{When: t0.Add(time.Hour), Value: 3.0},
	}

	out := ZeroCrossings(points)
	if len(out) != 3 {
		t.Fatalf("ZeroCrossings() returned %d points, wanted 3", len(out))
	}
	if !out[1].When.Equal(t0.Add(15 * time.Minute)) {
		t.Errorf("crossing at %v, wanted %v", out[1].When, t0.Add(15*time.Minute))
	}
	if out[2].Value != nil {
		t.Error("positive final point should be a gap")
	}
}

func TestZeroCrossingsNoCrossing(t *testing.T) {
	points := []TimePoint{
		{When: t0, Value: -1.0},
		{When: t0.Add(time.Hour), Value: -2.0},
		{When: t0.Add(2 * time.Hour), Value: -0.5},
	}

	out := ZeroCrossings(points)
	if len(out) != 3 {
		t.Fatalf("ZeroCrossings() returned %d points, wanted 3 (no crossings)", len(out))
	}
	for i, p := range out {
		if p.Value == nil {
			t.Errorf("point %d: all-negative input should never produce a gap", i)
		}
	}
}

func TestZeroCrossingsEqualValuesOnThreshold(t *testing.T) {
	// Zero followed by zero straddles nothing; equal consecutive values
	// must never be treated as a crossing (division by zero).
	points := []TimePoint{
		{When: t0, Value: 0.0},
		{When: t0.Add(time.Hour), Value: 0.0},
	}

	out := ZeroCrossings(points)
	if len(out) != 2 {
		t.Fatalf("ZeroCrossings() returned %d points, wanted 2", len(out))
	}
}

func TestZeroCrossingsLengthBounds(t *testing.T) {
	// Alternating signs: every pair crosses, output is 2n-1.
	points := []TimePoint{
		{When: t0, Value: 1},
		{When: t0.Add(time.Hour), Value: -1},
		{When: t0.Add(2 * time.Hour), Value: 1},
		{When: t0.Add(3 * time.Hour), Value: -1},
	}

	out := ZeroCrossings(points)
	if len(out) != 2*len(points)-1 {
		t.Errorf("ZeroCrossings() returned %d points, wanted %d", len(out), 2*len(points)-1)
	}
}

func TestZeroCrossingsEmpty(t *testing.T) {
	if out := ZeroCrossings(nil); out != nil {
		t.Errorf("ZeroCrossings(nil) = %v, wanted nil", out)
	}
}

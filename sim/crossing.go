package sim

import "time"

// ShadedPoint is one sample of a display series whose value<=0 region gets
// shaded. A nil Value marks a gap: the point lies outside the shaded
// region and must not be drawn. Chart.js skips null data points, so the
// series can be handed to a dataset as-is.
type ShadedPoint struct {
	When  time.Time
	Value *float64
}

// ZeroCrossings expands points into a gap-marked series whose shading
// boundary lands exactly on the interpolated zero crossing instead of
// snapping to the nearest sample. For every consecutive pair the left
// point is emitted (gap when positive), followed by an interpolated
// (tCross, 0) point when the pair straddles zero. Equal consecutive values
// never count as a crossing. Output holds between n and 2n-1 points.
func ZeroCrossings(points []TimePoint) []ShadedPoint {
	if len(points) == 0 {
		return nil
	}

	out := make([]ShadedPoint, 0, 2*len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		out = append(out, shadedPoint(p0))

		crosses := (p0.Value <= 0 && p1.Value > 0) || (p0.Value > 0 && p1.Value <= 0)
		if crosses && p1.Value != p0.Value {
			frac := -p0.Value / (p1.Value - p0.Value)
			dt := p1.When.Sub(p0.When)
			zero := 0.0
			out = append(out, ShadedPoint{
				When:  p0.When.Add(time.Duration(frac * float64(dt))),
				Value: &zero,
			})
		}
	}
	out = append(out, shadedPoint(points[len(points)-1]))

	return out
}

func shadedPoint(p TimePoint) ShadedPoint {
	if p.Value <= 0 {
		v := p.Value
		return ShadedPoint{When: p.When, Value: &v}
	}
	return ShadedPoint{When: p.When}
}

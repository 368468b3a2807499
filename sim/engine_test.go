package sim

import (
	"testing"
	"time"
)

// The seven hour scenario used throughout: hourly net load against a
// -10 MW thermal limit gives capacity [5 2 -2 1 7 12 15].
func sevenHourEngine() *Engine {
	load := hourly(t0, -5, -8, -12, -9, -3, 2, 5)
	solar := hourly(t0, 1, 1, 1, 1, 1, 1, 1)
	return NewEngine(load, solar, PolicyFirstWithinTolerance)
}

func TestMonthlyStatsAlwaysTwelveEntries(t *testing.T) {
	engine := NewEngine(NewSeries(nil), NewSeries(nil), PolicyFirstWithinTolerance)
	stats := engine.MonthlyStats(PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10})
	if len(stats) != 12 {
		t.Fatalf("MonthlyStats() returned %d entries, wanted 12", len(stats))
	}
	for i, s := range stats {
		if s.Month != i {
			t.Errorf("entry %d has month %d", i, s.Month)
		}
		if s.ProductionMWh != 0 || s.CurtailmentMWh != 0 {
			t.Errorf("empty series: month %d = %+v, wanted zeros", i, s)
		}
	}
}

func TestMonthlyStatsZeroPlantSize(t *testing.T) {
	stats := sevenHourEngine().MonthlyStats(PlantConfig{PlantSizeMW: 0, ThermalLimitMW: -10})
	for _, s := range stats {
		if s.ProductionMWh != 0 || s.CurtailmentMWh != 0 {
			t.Errorf("month %d = %+v, wanted zeros for a 0 MW plant", s.Month, s)
		}
	}
}

func TestMonthlyStatsSevenHourScenario(t *testing.T) {
	stats := sevenHourEngine().MonthlyStats(PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10})

	// firm = [3 2 -2 1 3 3 3], curtailed = [0 1 5 2 0 0 0]
	jan := stats[0]
	if !almostEqual(jan.ProductionMWh, 13) {
		t.Errorf("January production = %v, wanted 13", jan.ProductionMWh)
	}
	if !almostEqual(jan.CurtailmentMWh, 8) {
		t.Errorf("January curtailment = %v, wanted 8", jan.CurtailmentMWh)
	}
	for _, s := range stats[1:] {
		if s.ProductionMWh != 0 || s.CurtailmentMWh != 0 {
			t.Errorf("month %d = %+v, all energy belongs to January", s.Month, s)
		}
	}

	pct := AnnualCurtailmentPct(stats)
	if !almostEqual(pct, 100*8.0/21.0) {
		t.Errorf("AnnualCurtailmentPct() = %v, wanted %v", pct, 100*8.0/21.0)
	}
}

func TestMonthlyTotalsMatchSinglePass(t *testing.T) {
	engine := sevenHourEngine()
	cfg := PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10}
	stats := engine.MonthlyStats(cfg)

	var singlePassProduction, singlePassCurtailment float64
	firm, curtailed := engine.OutputSeries(cfg)
	for _, p := range firm {
		singlePassProduction += p.Value
	}
	for _, p := range curtailed {
		singlePassCurtailment += p.Value
	}

	if !almostEqual(TotalProductionMWh(stats), singlePassProduction) {
		t.Errorf("monthly production sum %v != single pass %v", TotalProductionMWh(stats), singlePassProduction)
	}
	if !almostEqual(TotalCurtailmentMWh(stats), singlePassCurtailment) {
		t.Errorf("monthly curtailment sum %v != single pass %v", TotalCurtailmentMWh(stats), singlePassCurtailment)
	}
}

func TestAnnualCurtailmentPctBounds(t *testing.T) {
	engine := sevenHourEngine()
	// Limits that keep hosting capacity non-negative at matched hours;
	// the unfloored negative firm output otherwise pushes the ratio past
	// 100 by construction.
	for _, limit := range []float64{-100, -20, -12} {
		stats := engine.MonthlyStats(PlantConfig{PlantSizeMW: 3, ThermalLimitMW: limit})
		pct := AnnualCurtailmentPct(stats)
		if pct < 0 || pct > 100 {
			t.Errorf("thermal limit %v: pct = %v, wanted [0, 100]", limit, pct)
		}
	}

	// No curtailment at all: a generous limit leaves every hour unclipped.
	stats := engine.MonthlyStats(PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -100})
	if TotalCurtailmentMWh(stats) != 0 {
		t.Fatalf("curtailment = %v, wanted 0", TotalCurtailmentMWh(stats))
	}
	if AnnualCurtailmentPct(stats) != 0 {
		t.Errorf("pct = %v, wanted exactly 0", AnnualCurtailmentPct(stats))
	}
}

func TestCurtailmentMonotonicInThermalLimit(t *testing.T) {
	// Allowing more export (a more negative limit) must never increase
	// total curtailment for a fixed plant.
	engine := sevenHourEngine()
	limits := []float64{5, 0, -5, -10, -15, -20, -50}
	prev := -1.0
	for i, limit := range limits {
		stats := engine.MonthlyStats(PlantConfig{PlantSizeMW: 3, ThermalLimitMW: limit})
		curtailment := TotalCurtailmentMWh(stats)
		if i > 0 && curtailment > prev+1e-9 {
			t.Errorf("limit %v: curtailment %v exceeds %v at the previous (less negative) limit",
				limit, curtailment, prev)
		}
		prev = curtailment
	}
}

func TestUnmatchedSolarSamplesAreSkipped(t *testing.T) {
	load := NewSeries([]TimePoint{{When: t0, Value: -5}})
	solar := NewSeries([]TimePoint{
		{When: t0.Add(3599999 * time.Millisecond), Value: 1},  // inside the window
		{When: t0.Add(3600001 * time.Millisecond), Value: 1},  // outside, skipped
		{When: t0.Add(48 * time.Hour), Value: 1},              // far away, skipped
	})
	engine := NewEngine(load, solar, PolicyFirstWithinTolerance)

	cfg := PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10}
	stats := engine.MonthlyStats(cfg)
	// Only the matched sample contributes: capacity 5, firm 3.
	if !almostEqual(TotalProductionMWh(stats), 3) {
		t.Errorf("production = %v, wanted 3 (one matched sample)", TotalProductionMWh(stats))
	}

	firm, curtailed := engine.OutputSeries(cfg)
	if len(firm) != 1 || len(curtailed) != 1 {
		t.Errorf("OutputSeries() lengths = %d/%d, wanted 1/1", len(firm), len(curtailed))
	}
}

func TestSweepPointsAreIndependent(t *testing.T) {
	engine := sevenHourEngine()
	sizes := []float64{0, 1, 3, 10}
	points := engine.Sweep(sizes, -10)
	if len(points) != len(sizes) {
		t.Fatalf("Sweep() returned %d points, wanted %d", len(points), len(sizes))
	}

	for i, p := range points {
		solo := engine.MonthlyStats(PlantConfig{PlantSizeMW: sizes[i], ThermalLimitMW: -10})
		if !almostEqual(TotalProductionMWh(p.Stats), TotalProductionMWh(solo)) {
			t.Errorf("sweep point %v differs from its standalone evaluation", sizes[i])
		}
	}
}

func TestWorstHourSize(t *testing.T) {
	// One capacity hour is negative, so no plant avoids curtailment.
	if size := sevenHourEngine().WorstHourSizeMW(-10); size != 0 {
		t.Errorf("WorstHourSizeMW() = %v, wanted 0", size)
	}

	// All-positive capacity [5 2 8]: the 2 MW hour binds.
	load := hourly(t0, -5, -8, -2)
	solar := hourly(t0, 1, 1, 1)
	engine := NewEngine(load, solar, PolicyFirstWithinTolerance)
	if size := engine.WorstHourSizeMW(-10); !almostEqual(size, 2) {
		t.Errorf("WorstHourSizeMW() = %v, wanted 2", size)
	}

	// A worst-hour-sized plant is never curtailed.
	stats := engine.MonthlyStats(PlantConfig{PlantSizeMW: 2, ThermalLimitMW: -10})
	if TotalCurtailmentMWh(stats) != 0 {
		t.Errorf("worst-hour-sized plant curtailment = %v, wanted 0", TotalCurtailmentMWh(stats))
	}
}

func TestMonthlyStatsCached(t *testing.T) {
	engine := sevenHourEngine()
	cfg := PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10}

	first := engine.MonthlyStats(cfg)
	second := engine.MonthlyStats(cfg)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cached result differs at month %d", i)
		}
	}

	// Returned slices are copies, mutating one must not poison the cache.
	first[0].ProductionMWh = -999
	third := engine.MonthlyStats(cfg)
	if third[0].ProductionMWh == -999 {
		t.Error("MonthlyStats() exposed the cached slice to mutation")
	}
}

func TestCapacitySeries(t *testing.T) {
	caps := sevenHourEngine().CapacitySeries(-10)
	want := []float64{5, 2, -2, 1, 7, 12, 15}
	if len(caps) != len(want) {
		t.Fatalf("CapacitySeries() returned %d points, wanted %d", len(caps), len(want))
	}
	for i, p := range caps {
		if !almostEqual(p.Value, want[i]) {
			t.Errorf("hour %d: capacity = %v, wanted %v", i, p.Value, want[i])
		}
	}
}

func TestReverseFlowSeries(t *testing.T) {
	// Net load [-3 2]: crossing at 3/5 of the hour.
	load := NewSeries([]TimePoint{
		{When: t0, Value: -3},
		{When: t0.Add(time.Hour), Value: 2},
	})
	engine := NewEngine(load, NewSeries(nil), PolicyFirstWithinTolerance)

	out := engine.ReverseFlowSeries()
	if len(out) != 3 {
		t.Fatalf("ReverseFlowSeries() returned %d points, wanted 3", len(out))
	}
	wantCross := t0.Add(36 * time.Minute)
	if !out[1].When.Equal(wantCross) {
		t.Errorf("crossing at %v, wanted %v", out[1].When, wantCross)
	}
}

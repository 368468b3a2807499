package sim

// MonthlyStat holds the accumulated energy for one calendar month under a
// given plant configuration. Month is the calendar month index, 0 for
// January. There are always exactly 12 entries, months without matched
// samples stay at zero.
type MonthlyStat struct {
	Month          int
	ProductionMWh  float64
	CurtailmentMWh float64
}

// AnnualCurtailmentPct is the curtailed share of potential output across
// all months, in percent. Zero when nothing was produced or curtailed,
// which covers empty series without a divide-by-zero special case.
func AnnualCurtailmentPct(stats []MonthlyStat) float64 {
	var production, curtailment float64
	for _, s := range stats {
		production += s.ProductionMWh
		curtailment += s.CurtailmentMWh
	}
	if production+curtailment == 0 {
		return 0
	}
	return 100 * curtailment / (production + curtailment)
}

// TotalProductionMWh sums firm production across all months.
func TotalProductionMWh(stats []MonthlyStat) float64 {
	var total float64
	for _, s := range stats {
		total += s.ProductionMWh
	}
	return total
}

// TotalCurtailmentMWh sums curtailed energy across all months.
func TotalCurtailmentMWh(stats []MonthlyStat) float64 {
	var total float64
	for _, s := range stats {
		total += s.CurtailmentMWh
	}
	return total
}

// SweepPoint is the outcome of evaluating one plant size. Every sweep
// point is computed independently, there is no shared accumulator.
type SweepPoint struct {
	PlantSizeMW          float64
	Stats                []MonthlyStat
	AnnualCurtailmentPct float64
}

package sim

import (
	"math"
	"sync"
	"time"
)

// Engine runs hosting capacity simulations over one pair of input series.
// The series are immutable for the engine's lifetime, so every computation
// is a pure function of (series, config) and results are memoized by
// configuration. On data refresh a new engine is built, never mutated in
// place.
type Engine struct {
	load    Series
	solar   Series
	aligner *Aligner
	policy  AlignPolicy

	mu    sync.RWMutex
	cache map[cacheKey][]MonthlyStat
}

type cacheKey struct {
	plantSizeMW    float64
	thermalLimitMW float64
}

func NewEngine(load, solar Series, policy AlignPolicy) *Engine {
	return &Engine{
		load:    load,
		solar:   solar,
		aligner: NewAligner(load, policy),
		policy:  policy,
		cache:   make(map[cacheKey][]MonthlyStat),
	}
}

func (e *Engine) Load() Series  { return e.load }
func (e *Engine) Solar() Series { return e.solar }

// MonthlyStats buckets firm production and curtailment per calendar month
// for the given configuration. Solar samples without a load sample within
// AlignTolerance are skipped and contribute nothing. The returned slice
// always has 12 entries and is a copy, safe for the caller to keep.
func (e *Engine) MonthlyStats(cfg PlantConfig) []MonthlyStat {
	key := cacheKey{cfg.PlantSizeMW, cfg.ThermalLimitMW}

	e.mu.RLock()
	stats, ok := e.cache[key]
	e.mu.RUnlock()

	if !ok {
		stats = e.computeMonthlyStats(cfg)
		e.mu.Lock()
		e.cache[key] = stats
		e.mu.Unlock()
	}

	cp := make([]MonthlyStat, len(stats))
	copy(cp, stats)
	return cp
}

func (e *Engine) computeMonthlyStats(cfg PlantConfig) []MonthlyStat {
	stats := make([]MonthlyStat, 12)
	for m := range stats {
		stats[m].Month = m
	}

	for i := 0; i < e.solar.Len(); i++ {
		sp := e.solar.At(i)
		lp, ok := e.aligner.Align(sp.When)
		if !ok {
			continue
		}
		clip := Clip(sp.Value, cfg, lp.Value)
		month := int(sp.When.UTC().Month()) - 1
		stats[month].ProductionMWh += clip.FirmMW
		stats[month].CurtailmentMWh += clip.CurtailedMW
	}

	return stats
}

// Sweep evaluates MonthlyStats for each plant size at a fixed thermal
// limit. Points are independent of each other.
func (e *Engine) Sweep(plantSizesMW []float64, thermalLimitMW float64) []SweepPoint {
	points := make([]SweepPoint, len(plantSizesMW))
	for i, size := range plantSizesMW {
		stats := e.MonthlyStats(PlantConfig{PlantSizeMW: size, ThermalLimitMW: thermalLimitMW})
		points[i] = SweepPoint{
			PlantSizeMW:          size,
			Stats:                stats,
			AnnualCurtailmentPct: AnnualCurtailmentPct(stats),
		}
	}
	return points
}

// WorstHourSizeMW is the largest plant that never gets curtailed: the
// minimum over all matched producing hours of capacity per unit of output.
// This is what a static interconnection study would size the plant to.
// Zero when any matched producing hour has no capacity at all.
func (e *Engine) WorstHourSizeMW(thermalLimitMW float64) float64 {
	size := math.Inf(1)
	matched := false
	for i := 0; i < e.solar.Len(); i++ {
		sp := e.solar.At(i)
		if sp.Value <= 0 {
			continue
		}
		lp, ok := e.aligner.Align(sp.When)
		if !ok {
			continue
		}
		matched = true
		size = math.Min(size, HostingCapacity(lp.Value, thermalLimitMW)/sp.Value)
	}
	if !matched {
		return 0
	}
	return math.Max(0, size)
}

// CapacitySeries is the real-time hosting capacity at every load sample.
func (e *Engine) CapacitySeries(thermalLimitMW float64) []TimePoint {
	out := make([]TimePoint, 0, e.load.Len())
	for i := 0; i < e.load.Len(); i++ {
		p := e.load.At(i)
		out = append(out, TimePoint{When: p.When, Value: HostingCapacity(p.Value, thermalLimitMW)})
	}
	return out
}

// OutputSeries returns the firm and curtailed output at every matched
// solar sample. Unmatched samples are left out of both series.
func (e *Engine) OutputSeries(cfg PlantConfig) (firm, curtailed []TimePoint) {
	for i := 0; i < e.solar.Len(); i++ {
		sp := e.solar.At(i)
		lp, ok := e.aligner.Align(sp.When)
		if !ok {
			continue
		}
		clip := Clip(sp.Value, cfg, lp.Value)
		firm = append(firm, TimePoint{When: sp.When, Value: clip.FirmMW})
		curtailed = append(curtailed, TimePoint{When: sp.When, Value: clip.CurtailedMW})
	}
	return firm, curtailed
}

// ReverseFlowSeries is the net load series prepared for shading its
// exporting (value<=0) region with exact zero crossings.
func (e *Engine) ReverseFlowSeries() []ShadedPoint {
	return ZeroCrossings(e.load.Points())
}

// Summary condenses one configuration's annual outcome.
type Summary struct {
	PlantSizeMW          float64   `json:"plantSizeMw"`
	ThermalLimitMW       float64   `json:"thermalLimitMw"`
	AlignPolicy          string    `json:"alignPolicy"`
	ProductionMWh        float64   `json:"productionMwh"`
	CurtailmentMWh       float64   `json:"curtailmentMwh"`
	AnnualCurtailmentPct float64   `json:"annualCurtailmentPct"`
	GeneratedAt          time.Time `json:"generatedAt"`
}

func (e *Engine) Summarize(cfg PlantConfig) Summary {
	stats := e.MonthlyStats(cfg)
	return Summary{
		PlantSizeMW:          cfg.PlantSizeMW,
		ThermalLimitMW:       cfg.ThermalLimitMW,
		AlignPolicy:          e.policy.String(),
		ProductionMWh:        TotalProductionMWh(stats),
		CurtailmentMWh:       TotalCurtailmentMWh(stats),
		AnnualCurtailmentPct: AnnualCurtailmentPct(stats),
		GeneratedAt:          time.Now().UTC(),
	}
}

package www

import (
	"log/slog"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/convert"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/types/maybe"
)

// SummaryData is what the summary fragment renders. Fields are invalid
// until the first data load has produced an engine.
type SummaryData struct {
	PlantSizeMW          float64
	ThermalLimitMW       float64
	AlignPolicy          string
	ProductionMWh        maybe.Maybe[float64]
	CurtailmentMWh       maybe.Maybe[float64]
	AnnualCurtailmentPct maybe.Maybe[float64]
	SampleCount          maybe.Maybe[int]
}

type SummaryManager struct {
	store  *sim.Store
	logger *slog.Logger
	cnfg   config.AppConfigSimulation
}

func NewSummaryManager(store *sim.Store, cnfg config.AppConfigSimulation) *SummaryManager {
	return &SummaryManager{
		store:  store,
		logger: slog.Default().With("module", "summary_manager"),
		cnfg:   cnfg,
	}
}

func (m *SummaryManager) Get() SummaryData {
	data := SummaryData{
		PlantSizeMW:          m.cnfg.PlantSizeMW,
		ThermalLimitMW:       m.cnfg.ThermalLimitMW,
		AlignPolicy:          m.cnfg.GetAlignment().String(),
		ProductionMWh:        maybe.None[float64](),
		CurtailmentMWh:       maybe.None[float64](),
		AnnualCurtailmentPct: maybe.None[float64](),
		SampleCount:          maybe.None[int](),
	}

	engine := m.store.Engine()
	if engine == nil {
		return data
	}

	summary := engine.Summarize(m.cnfg.PlantConfig())
	data.ProductionMWh = maybe.Some(convert.TwoDecimals(summary.ProductionMWh))
	data.CurtailmentMWh = maybe.Some(convert.TwoDecimals(summary.CurtailmentMWh))
	data.AnnualCurtailmentPct = maybe.Some(convert.RoundFloat64(summary.AnnualCurtailmentPct, 1))
	data.SampleCount = maybe.Some(engine.Solar().Len())

	return data
}

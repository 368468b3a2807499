package www

import (
	"log/slog"
	"net/http"
	"sort"

	_ "embed"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/slice"
)

type sweepTemplRow struct {
	PlantSizeMW          float64
	ProductionMWh        float64
	CurtailmentMWh       float64
	AnnualCurtailmentPct float64
	IsWorstHourSize      bool
}

type sweepTemplData struct {
	ThermalLimitMW  float64
	WorstHourSizeMW float64
	Rows            []sweepTemplRow
}

// NewSweepHandler compares the configured plant sizes against the
// worst-hour size, the largest plant a static study would allow.
func NewSweepHandler(logger *slog.Logger, store *sim.Store, tm *TemplateManager, cnfg config.AppConfigSimulation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		engine := store.Engine()
		if engine == nil {
			http.Error(w, "no data loaded yet", http.StatusServiceUnavailable)
			return
		}

		thermalLimit := floatOrDefault(r.URL, "thermal_limit", cnfg.ThermalLimitMW)
		worstHourSize := engine.WorstHourSizeMW(thermalLimit)

		sizes := append([]float64{worstHourSize}, cnfg.SweepSizesMW...)
		sort.Float64s(sizes)

		points := engine.Sweep(sizes, thermalLimit)
		data := sweepTemplData{
			ThermalLimitMW:  thermalLimit,
			WorstHourSizeMW: worstHourSize,
			Rows: slice.Map(points, func(p sim.SweepPoint) sweepTemplRow {
				return sweepTemplRow{
					PlantSizeMW:          p.PlantSizeMW,
					ProductionMWh:        sim.TotalProductionMWh(p.Stats),
					CurtailmentMWh:       sim.TotalCurtailmentMWh(p.Stats),
					AnnualCurtailmentPct: p.AnnualCurtailmentPct,
					IsWorstHourSize:      p.PlantSizeMW == worstHourSize,
				}
			}),
		}

		if err := tm.ExecuteToWriter("sweep.html", data, &w); err != nil {
			logger.Error("handling sweep request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

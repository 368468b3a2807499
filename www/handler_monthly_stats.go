package www

import (
	"log/slog"
	"net/http"

	_ "embed"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/slice"
)

type monthlyStatsTemplRow struct {
	Month          int
	ProductionMWh  float64
	CurtailmentMWh float64
}

type monthlyStatsTemplData struct {
	PlantSizeMW          float64
	ThermalLimitMW       float64
	Rows                 []monthlyStatsTemplRow
	TotalProductionMWh   float64
	TotalCurtailmentMWh  float64
	AnnualCurtailmentPct float64
}

// NewMonthlyStatsHandler renders the per-month table for one plant
// configuration. A POST triggers a data refresh.
func NewMonthlyStatsHandler(logger *slog.Logger, store *sim.Store, tm *TemplateManager, cnfg config.AppConfigSimulation, task func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")

			engine := store.Engine()
			if engine == nil {
				http.Error(w, "no data loaded yet", http.StatusServiceUnavailable)
				return
			}

			cfg := sim.PlantConfig{
				PlantSizeMW:    floatOrDefault(r.URL, "plant_size", cnfg.PlantSizeMW),
				ThermalLimitMW: floatOrDefault(r.URL, "thermal_limit", cnfg.ThermalLimitMW),
			}

			stats := engine.MonthlyStats(cfg)
			data := monthlyStatsTemplData{
				PlantSizeMW:    cfg.PlantSizeMW,
				ThermalLimitMW: cfg.ThermalLimitMW,
				Rows: slice.Map(stats, func(s sim.MonthlyStat) monthlyStatsTemplRow {
					return monthlyStatsTemplRow{
						Month:          s.Month,
						ProductionMWh:  s.ProductionMWh,
						CurtailmentMWh: s.CurtailmentMWh,
					}
				}),
				TotalProductionMWh:   sim.TotalProductionMWh(stats),
				TotalCurtailmentMWh:  sim.TotalCurtailmentMWh(stats),
				AnnualCurtailmentPct: sim.AnnualCurtailmentPct(stats),
			}

			if err := tm.ExecuteToWriter("monthly_stats.html", data, &w); err != nil {
				logger.Error("handling monthly_stats request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

		case http.MethodPost:
			task()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

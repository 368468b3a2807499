package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/www/chartjs"
)

// NewChartHandler serves the Chart.js payloads for the landing page:
// hosting capacity against plant output for the requested day window,
// the net load with its sub-zero region carrying exact zero crossings,
// and the monthly production/curtailment totals. Plant size and thermal
// limit default to the configured values but can be overridden per
// request with the plant_size and thermal_limit query parameters.
func NewChartHandler(logger *slog.Logger, store *sim.Store, cnfg config.AppConfigSimulation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		engine := store.Engine()
		if engine == nil {
			http.Error(w, "no data loaded yet", http.StatusServiceUnavailable)
			return
		}

		cfg := sim.PlantConfig{
			PlantSizeMW:    floatOrDefault(r.URL, "plant_size", cnfg.PlantSizeMW),
			ThermalLimitMW: floatOrDefault(r.URL, "thermal_limit", cnfg.ThermalLimitMW),
		}

		from, to := chartWindow(r, engine)
		inWindow := func(when time.Time) bool {
			return !when.Before(from) && when.Before(to)
		}

		// Chart 1: hosting capacity, firm output and curtailment
		chart1 := chartjs.NewTimeChart("Hosting Capacity and Plant Output", "MW")
		chart1.AddDataset(chartjs.ChartDataset{
			Label:       "Hosting capacity",
			Data:        timeDataset(engine.CapacitySeries(cfg.ThermalLimitMW), inWindow),
			BorderWidth: 2,
			BorderColor: chartjs.ColorBlue,
		})
		firm, curtailed := engine.OutputSeries(cfg)
		chart1.AddDataset(chartjs.ChartDataset{
			Label:       "Firm output",
			Data:        timeDataset(firm, inWindow),
			BorderWidth: 2,
			BorderColor: chartjs.ColorGreen,
		})
		chart1.AddDataset(chartjs.ChartDataset{
			Label:       "Curtailed",
			Data:        timeDataset(curtailed, inWindow),
			BorderWidth: 2,
			BorderColor: chartjs.ColorOrange,
		})

		// Chart 2: net load with the exporting region shaded. The shade
		// dataset starts and stops exactly where the net load crosses zero,
		// gaps elsewhere keep Chart.js from filling importing hours.
		chart2 := chartjs.NewTimeChart("Net Load and Reverse Flow", "MW")
		netLoad := engine.Load().Points()
		chart2.AddDataset(chartjs.ChartDataset{
			Label:       "Net load",
			Data:        timeDataset(netLoad, inWindow),
			BorderWidth: 2,
			BorderColor: chartjs.ColorGray,
		})
		shade := make([]chartjs.Point, 0)
		for _, p := range engine.ReverseFlowSeries() {
			if !inWindow(p.When) {
				continue
			}
			shade = append(shade, chartjs.NewTimePoint(p.When, p.Value, 3))
		}
		chart2.AddDataset(chartjs.ChartDataset{
			Label:           "Reverse flow",
			Data:            shade,
			BorderWidth:     1,
			Fill:            true,
			BorderColor:     chartjs.ColorRed,
			BackgroundColor: chartjs.ColorRed,
		})

		// Chart 3: monthly totals for the whole dataset
		stats := engine.MonthlyStats(cfg)
		production := make([]*float64, len(stats))
		curtailment := make([]*float64, len(stats))
		for i, s := range stats {
			production[i] = chartjs.FixedFloat64(&s.ProductionMWh, 2)
			curtailment[i] = chartjs.FixedFloat64(&s.CurtailmentMWh, 2)
		}
		chart3 := chartjs.NewMonthChart("Monthly Production and Curtailment", "MWh")
		chart3.AddDataset(chartjs.ChartDataset{
			Label:           "Production",
			Data:            production,
			BackgroundColor: chartjs.ColorGreen,
		})
		chart3.AddDataset(chartjs.ChartDataset{
			Label:           "Curtailment",
			Data:            curtailment,
			BackgroundColor: chartjs.ColorOrange,
		})

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode([]chartjs.Chart{chart1, chart2, chart3})
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode data points", http.StatusInternalServerError)
			return
		}
	}
}

// chartWindow resolves the date/days query parameters against the loaded
// data. Without parameters the first week of the dataset is shown.
func chartWindow(r *http.Request, engine *sim.Engine) (time.Time, time.Time) {
	start, _, _ := engine.Load().Span()
	from := dateOrDefault(r.URL, "date", start.Truncate(24*time.Hour))
	days := intOrDefault(r.URL, "days", 7)
	if days < 1 {
		days = 1
	}
	return from, from.Add(time.Duration(days) * 24 * time.Hour)
}

func timeDataset(points []sim.TimePoint, include func(time.Time) bool) []chartjs.Point {
	out := make([]chartjs.Point, 0, len(points))
	for _, p := range points {
		if !include(p.When) {
			continue
		}
		v := p.Value
		out = append(out, chartjs.NewTimePoint(p.When, &v, 3))
	}
	return out
}

// Runs one simulation over the configured CSV files and prints the
// monthly breakdown, without the server or the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/ingest"
	"github.com/angas/gridhost-go/sim"
	"github.com/lmittmann/tint"
)

func main() {
	w := os.Stdout
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339Nano,
		}),
	))

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	provider := ingest.NewFileProvider(cnfg.Data.NetLoadCsv, cnfg.Data.SolarProfileCsv)

	load, err := provider.GetNetLoad(ctx)
	if err != nil {
		panic(err)
	}
	solar, err := provider.GetSolarProfile(ctx)
	if err != nil {
		panic(err)
	}

	engine := sim.NewEngine(
		sim.FromSeriesPoints(load),
		sim.FromSeriesPoints(solar),
		cnfg.Simulation.GetAlignment())

	cfg := cnfg.Simulation.PlantConfig()
	for _, s := range engine.MonthlyStats(cfg) {
		fmt.Printf("%-10s production %10.2f MWh   curtailment %10.2f MWh\n",
			time.Month(s.Month+1), s.ProductionMWh, s.CurtailmentMWh)
	}

	summary := engine.Summarize(cfg)
	fmt.Printf("\nplant %.2f MW, limit %.2f MW (%s alignment): %.2f MWh produced, %.2f MWh curtailed (%.1f%%)\n",
		summary.PlantSizeMW, summary.ThermalLimitMW, summary.AlignPolicy,
		summary.ProductionMWh, summary.CurtailmentMWh, summary.AnnualCurtailmentPct)
	fmt.Printf("worst-hour plant size: %.2f MW\n", engine.WorstHourSizeMW(cfg.ThermalLimitMW))
}

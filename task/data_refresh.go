package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/database"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/types"
)

// NewDataRefreshTask re-reads the input series from the provider, persists
// them and swaps a freshly built engine into the store. onRefresh (may be
// nil) is invoked with the new engine after a successful swap.
func NewDataRefreshTask(
	logger *slog.Logger,
	db *database.Database,
	store *sim.Store,
	provider types.SeriesProvider,
	onRefresh func(*sim.Engine),
	cnfg config.AppConfigSimulation) func() {

	return func() {
		logger.Debug("running data refresh task...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		load, err := provider.GetNetLoad(ctx)
		if err != nil {
			logger.Error("data refresh error, reading net load", slog.Any("error", err))
			return
		}
		solar, err := provider.GetSolarProfile(ctx)
		if err != nil {
			logger.Error("data refresh error, reading solar profile", slog.Any("error", err))
			return
		}

		if err := db.ReplaceNetLoad(ctx, load); err != nil {
			logger.Error("data refresh error, saving net load", slog.Any("error", err))
		}
		if err := db.ReplaceSolarProfile(ctx, solar); err != nil {
			logger.Error("data refresh error, saving solar profile", slog.Any("error", err))
		}

		engine := store.Swap(
			sim.FromSeriesPoints(load),
			sim.FromSeriesPoints(solar),
			cnfg.GetAlignment())
		if onRefresh != nil {
			onRefresh(engine)
		}

		logger.Info("data refresh done",
			slog.Int("loadPoints", len(load)),
			slog.Int("solarPoints", len(solar)))
	}
}

// LoadFromDatabase seeds the store from previously persisted series, used
// at startup when the data files are unavailable.
func LoadFromDatabase(ctx context.Context, db *database.Database, store *sim.Store, cnfg config.AppConfigSimulation) (*sim.Engine, error) {
	load, err := db.GetNetLoad(ctx)
	if err != nil {
		return nil, err
	}
	solar, err := db.GetSolarProfile(ctx)
	if err != nil {
		return nil, err
	}
	return store.Swap(
		sim.FromSeriesPoints(load),
		sim.FromSeriesPoints(solar),
		cnfg.GetAlignment()), nil
}

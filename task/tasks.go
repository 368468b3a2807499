package task

import (
	"context"
	"log/slog"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/database"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/types"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	DataRefreshTask func()
	MaintenanceTask func()
}

func NewTasks(
	db *database.Database,
	store *sim.Store,
	provider types.SeriesProvider,
	onRefresh func(*sim.Engine),
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		DataRefreshTask: NewDataRefreshTask(logger.With(slog.String("task", "data_refresh")), db, store, provider, onRefresh, cnfg.Simulation),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.Data.GetRefreshAt(), t.DataRefreshTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/angas/gridhost-go/announce"
	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/database"
	"github.com/angas/gridhost-go/hours"
	"github.com/angas/gridhost-go/ingest"
	"github.com/angas/gridhost-go/logging"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/task"
	"github.com/angas/gridhost-go/www"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("gridhost is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	store := sim.NewStore()
	provider := ingest.NewFileProvider(cnfg.Data.NetLoadCsv, cnfg.Data.SolarProfileCsv)

	var publisher *announce.Publisher
	if cnfg.Announce.Enabled() && !isDevMode() {
		publisher = announce.New(cnfg.Announce)
		if err := publisher.Connect(); err != nil {
			panic(fmt.Sprintf("announce broker connection error: %v", err))
		}
		defer publisher.Disconnect()
	}

	onRefresh := func(engine *sim.Engine) {
		if publisher == nil {
			return
		}
		summary := engine.Summarize(cnfg.Simulation.PlantConfig())
		if err := publisher.PublishSummary(summary); err != nil {
			logger.Error("failed to publish summary", slog.Any("error", err))
		}
	}

	tasks := task.NewTasks(db, store, provider, onRefresh, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	// Seed the store from persisted series so the GUI has data right away,
	// then refresh from the data files in the background.
	if engine, err := task.LoadFromDatabase(ctx, db, store, cnfg.Simulation); err != nil {
		logger.Warn("failed to seed simulation from database", slog.Any("error", err))
	} else {
		logger.Info("simulation seeded from database",
			slog.Int("loadPoints", engine.Load().Len()),
			slog.Int("solarPoints", engine.Solar().Len()))
	}
	go tasks.DataRefreshTask()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, store, tasks, cnfg)
	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}

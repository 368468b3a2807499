package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/gridhost-go/config"
	"github.com/angas/gridhost-go/database"
	"github.com/angas/gridhost-go/sim"
	"github.com/angas/gridhost-go/task"
)

type Server struct {
	logger  *slog.Logger
	config  config.AppConfigApi
	db      *database.Database
	store   *sim.Store
	summary *SummaryManager
	hub     *Hub
	tm      *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, store *sim.Store, tasks *task.Tasks, cnfg *config.AppConfig) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.Api.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger:  logger,
		config:  cnfg.Api,
		db:      db,
		store:   store,
		summary: NewSummaryManager(store, cnfg.Simulation),
		hub:     NewHub(logger),
		tm:      tm,
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(cnfg.Api.WwwDir))

	http.Handle("/monthly_stats", logReqMW(NewMonthlyStatsHandler(
		logger.With(slog.String("handler", "monthly_stats")),
		s.store,
		s.tm,
		cnfg.Simulation,
		tasks.DataRefreshTask)))

	http.Handle("/sweep", logReqMW(NewSweepHandler(
		logger.With(slog.String("handler", "sweep")),
		s.store,
		s.tm,
		cnfg.Simulation)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db,
		s.tm)))

	http.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")),
		s.store,
		cnfg.Simulation)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 10)
	defer ticker.Stop()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			if err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			if s.hub.ClientCount() == 0 {
				continue
			}
			buf, err := s.tm.Execute("summary.html", s.summary.Get())
			if err != nil {
				s.logger.Error("template execution failed", slog.Any("error", err))
				continue
			}
			s.hub.Broadcast <- buf.Bytes()
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}

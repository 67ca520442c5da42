package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/config"
	"github.com/sebaaaap/Dashboard-prueba1/internal/metrics"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/factory"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/sheets"
	"github.com/sebaaaap/Dashboard-prueba1/internal/scheduler"
	"github.com/sebaaaap/Dashboard-prueba1/internal/server/handlers"
	"github.com/sebaaaap/Dashboard-prueba1/internal/server/router"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/ingestion"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/reporting"
	whatsappclient "github.com/sebaaaap/Dashboard-prueba1/pkg/clients/whatsapp"
	"github.com/sebaaaap/Dashboard-prueba1/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := factory.Open(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init record store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close record store", zap.Error(err))
		}
	}()

	ingestSvc := ingestion.NewService(store, baseLogger.Named("svc.ingestion"))

	var m *metrics.Metrics
	if cfg.Server.MetricsEnabled {
		m = metrics.New()
		ingestSvc.WithRecorder(m)
	}
	reportingSvc := reporting.NewService(store, cfg.Location(), baseLogger.Named("svc.reporting"))

	deps := scheduler.Deps{Syncer: ingestSvc, Digester: reportingSvc}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		deps.Sheet = sheetsRepo
	} else {
		baseLogger.Warn("google sheet id missing, sheet sync disabled")
	}

	if cfg.WhatsApp.Enabled() {
		deps.Notifier = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp alert digest enabled")
	}

	engine := router.New(router.Handlers{
		Health:  handlers.NewHealthHandler(store, baseLogger.Named("handlers.health")),
		Upload:  handlers.NewUploadHandler(ingestSvc, deps.Sheet, cfg.Upload.MaxBytes, baseLogger.Named("handlers.upload")),
		Reports: handlers.NewReportsHandler(reportingSvc, baseLogger.Named("handlers.reports")),
		Metrics: m,
	}, cfg.Server, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, deps, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"fleettrack/internal/config"
	"fleettrack/internal/repository/csvstore"
	"fleettrack/internal/scheduler"
	"fleettrack/internal/server/handlers"
	"fleettrack/internal/server/router"
	exportsvc "fleettrack/internal/service/export"
	lookupsvc "fleettrack/internal/service/lookup"
	"fleettrack/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Logging.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := csvstore.New(cfg.Storage.CSVPath(), baseLogger.Named("repo.csv"))
	if err := store.EnsureInitialized(); err != nil {
		baseLogger.Fatal("failed to init record store", zap.Error(err))
	}

	lookupService := lookupsvc.NewService(store, baseLogger.Named("svc.lookup"))
	exportService := exportsvc.NewService(store, cfg.Storage.ExcelPath(), cfg.Storage.PDFPath(), baseLogger.Named("svc.export"))

	recordHandler := handlers.NewRecordHandler(store, lookupService, baseLogger.Named("handlers.records"))
	exportHandler := handlers.NewExportHandler(store, exportService, baseLogger.Named("handlers.exports"))
	engine := router.New(recordHandler, exportHandler, baseLogger.Named("router"))

	if cfg.Backup.Enabled {
		sched := scheduler.NewScheduler(cfg.Backup, store, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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

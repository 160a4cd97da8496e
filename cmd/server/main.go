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

	"github.com/mamadbah2/finalqc/internal/config"
	"github.com/mamadbah2/finalqc/internal/repository"
	"github.com/mamadbah2/finalqc/internal/repository/memory"
	"github.com/mamadbah2/finalqc/internal/repository/mongodb"
	"github.com/mamadbah2/finalqc/internal/repository/sheets"
	"github.com/mamadbah2/finalqc/internal/scheduler"
	"github.com/mamadbah2/finalqc/internal/server/handlers"
	"github.com/mamadbah2/finalqc/internal/server/router"
	inspectionsvc "github.com/mamadbah2/finalqc/internal/service/inspections"
	reportingsvc "github.com/mamadbah2/finalqc/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/finalqc/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/finalqc/pkg/clients/whatsapp"
	"github.com/mamadbah2/finalqc/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.InspectionRepository
	switch cfg.Store.Driver {
	case config.StoreMemory:
		baseLogger.Warn("using in-memory store, records are lost on restart")
		store = memory.NewRepository()
	default:
		connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		client, err := mongodb.Connect(connectCtx, cfg.MongoDB.URI)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}

		mongoRepo := mongodb.NewInspectionRepository(client, cfg.MongoDB.DBName, baseLogger)
		if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
			baseLogger.Warn("failed to ensure mongodb indexes", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoRepo
	}

	opts := []inspectionsvc.Option{inspectionsvc.WithListLimit(cfg.Inspections.ListLimit)}

	if cfg.Sheets.Enabled() {
		ledger, err := sheets.NewGoogleSheetLedger(context.Background(), cfg.Sheets, baseLogger)
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		opts = append(opts, inspectionsvc.WithLedger(ledger))
	} else {
		baseLogger.Info("google sheets ledger disabled")
	}

	var messagingSvc *whatsappsvc.MetaWhatsAppService
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, baseLogger.Named("svc.whatsapp"))
		opts = append(opts, inspectionsvc.WithNotifier(messagingSvc))
	} else {
		baseLogger.Info("whatsapp notifications disabled")
	}

	inspectionSvc := inspectionsvc.NewService(store, baseLogger, opts...)
	reportingSvc := reportingsvc.NewService(store, baseLogger)

	h := router.Handlers{
		Inspections: handlers.NewInspectionHandler(inspectionSvc, baseLogger.Named("handlers.inspections")),
		AQL:         handlers.NewAQLHandler(),
		Reports:     handlers.NewReportHandler(reportingSvc),
	}
	if messagingSvc != nil {
		h.Notifications = handlers.NewNotificationHandler(messagingSvc, baseLogger.Named("handlers.notifications"))

		sched, err := scheduler.NewScheduler(*cfg, reportingSvc, messagingSvc, baseLogger)
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}
	engine := router.New(h, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
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

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/avolkov/marketsync/internal/config"
	"github.com/avolkov/marketsync/internal/repository/feed"
	"github.com/avolkov/marketsync/internal/repository/mongodb"
	"github.com/avolkov/marketsync/internal/repository/sheets"
	"github.com/avolkov/marketsync/internal/scheduler"
	"github.com/avolkov/marketsync/internal/server/handlers"
	"github.com/avolkov/marketsync/internal/server/router"
	syncsvc "github.com/avolkov/marketsync/internal/service/sync"
	"github.com/avolkov/marketsync/pkg/clients/ozon"
	"github.com/avolkov/marketsync/pkg/clients/yandex"
	"github.com/avolkov/marketsync/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var source syncsvc.InventorySource
	switch cfg.Sync.Source {
	case config.SourceSheets:
		sheetsRepo, err := sheets.NewInventoryRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets inventory source", zap.Error(err))
		}
		source = sheetsRepo
		baseLogger.Info("inventory source: google sheet", zap.String("sheet", cfg.Sheets.SpreadsheetID))
	default:
		source = feed.NewRepository(cfg.Feed, baseLogger.Named("repo.feed"))
		baseLogger.Info("inventory source: remnants feed", zap.String("url", cfg.Feed.URL))
	}

	var runStore mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		runStore = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, run history disabled")
	}

	ozonClient := ozon.NewClient(cfg.Ozon)
	marketClient := yandex.NewClient(cfg.Market)

	syncService := syncsvc.NewService(*cfg, source, ozonClient, marketClient, runStore, baseLogger.Named("svc.sync"))
	syncHandler := handlers.NewSyncHandler(syncService, runStore, baseLogger.Named("handlers.sync"))
	engine := router.New(syncHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, syncService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

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

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow/internal/config"
	"taskflow/internal/docstore"
	"taskflow/internal/docstore/memstore"
	"taskflow/internal/docstore/postgres"
	"taskflow/internal/docstore/sqlite"
	"taskflow/internal/handlers"
	"taskflow/internal/logger"
	"taskflow/internal/service"
	"taskflow/internal/store"
	"taskflow/internal/worker"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		logger.Init(true)
		logger.Error("Main: failed to load config", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Development)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Main: failed to open document store", err,
			zap.String("engine", cfg.Store.Engine))
		os.Exit(1)
	}
	defer db.Close()

	documentStore := store.New(db, cfg.Retention())
	if err := documentStore.Load(ctx); err != nil {
		logger.Error("Main: failed to load snapshot", err)
		os.Exit(1)
	}

	housekeeper := worker.NewHousekeeper(documentStore, cfg.Housekeeping.Schedule)
	if err := housekeeper.Start(ctx); err != nil {
		logger.Error("Main: failed to start housekeeping", err,
			zap.String("schedule", cfg.Housekeeping.Schedule))
		os.Exit(1)
	}

	svc := service.New(documentStore)
	handler := handlers.NewTaskHandler(svc)
	router := handlers.NewRouter(handler, cfg.Server.RateLimitRPM, cfg.Server.Timeout)

	server := &http.Server{
		Addr:    cfg.ServerAddr(),
		Handler: router,
	}

	go func() {
		logger.Info("Main: server started", zap.String("addr", cfg.ServerAddr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Main: server failed", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Main: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Main: shutdown failed", err)
	}
	housekeeper.Stop()

	logger.Info("Main: stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.Store.Engine {
	case "sqlite":
		return sqlite.Open(cfg.Store.Path)
	case "postgres":
		return postgres.New(ctx, cfg.Store.DSN)
	default:
		return memstore.New(), nil
	}
}

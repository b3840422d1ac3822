package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/config"
	"github.com/genapagie/ovinpro/internal/repository/mongodb"
	"github.com/genapagie/ovinpro/internal/repository/sheets"
	"github.com/genapagie/ovinpro/internal/scheduler"
	"github.com/genapagie/ovinpro/internal/server/handlers"
	"github.com/genapagie/ovinpro/internal/server/router"
	analysissvc "github.com/genapagie/ovinpro/internal/service/analysis"
	authsvc "github.com/genapagie/ovinpro/internal/service/auth"
	backupsvc "github.com/genapagie/ovinpro/internal/service/backup"
	livestocksvc "github.com/genapagie/ovinpro/internal/service/livestock"
	"github.com/genapagie/ovinpro/pkg/clients/gemini"
	"github.com/genapagie/ovinpro/pkg/logger"
	"github.com/genapagie/ovinpro/pkg/token"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// The store handle is opened once here and injected everywhere; no
	// component reopens a connection per call.
	store, err := mongodb.Open(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to open mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureCollections(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure collections", zap.Error(err))
	}

	repo := mongodb.NewRepository(store)
	tokens := token.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Optional flock-register sync
	var registerSync livestocksvc.RegisterSync
	if cfg.SheetsEnabled() {
		flockRegister, err := sheets.NewFlockRegister(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init flock register", zap.Error(err))
		}
		registerSync = flockRegister
		baseLogger.Info("flock register sync enabled")
	}

	// Optional AI vision client
	var aiClient gemini.Client
	if cfg.AI.GeminiKey != "" {
		aiClient = gemini.NewClient(cfg.AI.GeminiKey)
		baseLogger.Info("gemini vision client enabled")
	} else {
		baseLogger.Warn("gemini api key missing, image analysis disabled")
	}

	authSvc := authsvc.NewService(repo, tokens, baseLogger.Named("svc.auth"))
	livestockSvc := livestocksvc.NewService(repo, registerSync, baseLogger.Named("svc.livestock"))
	backupSvc := backupsvc.NewService(repo, baseLogger.Named("svc.backup"))
	analysisSvc := analysissvc.NewService(aiClient, baseLogger.Named("svc.analysis"))

	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Livestock: handlers.NewLivestockHandler(livestockSvc, baseLogger.Named("handlers.livestock")),
		Backup:    handlers.NewBackupHandler(backupSvc, baseLogger.Named("handlers.backup")),
		Analysis:  handlers.NewAnalysisHandler(analysisSvc, baseLogger.Named("handlers.analysis")),
	}, tokens, baseLogger.Named("router"))

	// Nightly backup snapshots
	sched := scheduler.NewScheduler(cfg.Backup, backupSvc, repo, baseLogger.Named("scheduler"))
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

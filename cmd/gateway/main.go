package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/siteflow/dashboard-gateway/internal/api"
	"github.com/siteflow/dashboard-gateway/internal/core/service"
	"github.com/siteflow/dashboard-gateway/internal/infrastructure/cache"
	"github.com/siteflow/dashboard-gateway/internal/infrastructure/config"
	mongodb "github.com/siteflow/dashboard-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/siteflow/dashboard-gateway/internal/infrastructure/db/redis"
	"github.com/siteflow/dashboard-gateway/internal/infrastructure/queue"
	"github.com/siteflow/dashboard-gateway/internal/infrastructure/upstream"
	"github.com/siteflow/dashboard-gateway/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") == "development",
	})

	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Core wiring ---
	store := cache.New(cache.Options{TTL: cfg.Cache.TTL, Retention: cfg.Cache.Retention})
	defer store.Close()

	client := upstream.NewClient(cfg.Upstream.BaseURL, &http.Client{Timeout: cfg.Upstream.Timeout}, log)

	activityRepo := mongodb.NewActivityRepository(db)
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityService, log)
	dispatcher.Start(ctx)

	sessions := service.NewSessionService(client, redisdb.NewSessionStore(rdb), log)
	resources := service.NewResourceService(client, store, dispatcher, log)

	e := api.NewRouter(cfg, api.Dependencies{
		Sessions:  sessions,
		Resources: resources,
		Activity:  activityService,
		Mongo:     db,
		Redis:     rdb,
	}, log)

	// --- Serve ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

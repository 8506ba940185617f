package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cargotrack/tracking-api/internal/api"
	"github.com/cargotrack/tracking-api/internal/core/service"
	mongodb "github.com/cargotrack/tracking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cargotrack/tracking-api/internal/infrastructure/db/redis"
	"github.com/cargotrack/tracking-api/internal/infrastructure/geometry"
	"github.com/cargotrack/tracking-api/internal/jobs"
	"github.com/cargotrack/tracking-api/internal/pkg/config"
	"github.com/cargotrack/tracking-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB (required) ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	shipmentRepo := mongodb.NewShipmentRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	if err := shipmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create shipment indexes")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	// --- Redis (optional: dedup runs best-effort, service degrades without it) ---
	var dedup service.PingDedup
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, location ping dedup disabled")
		rdb = nil
	} else {
		dedup = redisdb.NewPingDedup(rdb)
		defer rdb.Close()
	}

	// --- Services ---
	geo := geometry.NewClient(cfg.Routing.BaseURL, cfg.Routing.APIKey, log)
	shipmentSvc := service.NewShipmentService(shipmentRepo, geo, service.NewTrackingIDGenerator(), dedup, log)
	shipmentSvc.SetGeometryTimeout(cfg.Routing.Timeout)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Background jobs ---
	if cfg.Sweeper.Enabled {
		sweeper := jobs.NewDelaySweeper(shipmentSvc, cfg.Sweeper.Schedule, log)
		if err := sweeper.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start delay sweeper")
		}
		defer sweeper.Stop()
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		Shipments: shipmentSvc,
		Auth:      authSvc,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("cargo tracking api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

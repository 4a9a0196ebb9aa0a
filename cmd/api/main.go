// Package main is the entry point for the diary API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/openjournal/diary-system/internal/api"
	"github.com/openjournal/diary-system/internal/core/service"
	"github.com/openjournal/diary-system/internal/infrastructure/config"
	mongodb "github.com/openjournal/diary-system/internal/infrastructure/db/mongo"
	redisdb "github.com/openjournal/diary-system/internal/infrastructure/db/redis"
	"github.com/openjournal/diary-system/internal/infrastructure/queue"
	"github.com/openjournal/diary-system/pkg/logger"
)

// @title        Diary API
// @version      1.0
// @description  Personal diary backend with asynchronous entry processing.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	entryRepo := mongodb.NewEntryRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := entryRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("entry indexes failed")
	}

	ledger := redisdb.NewRevocationLedger(rdb)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, ledger)
	authService := service.NewAuthService(userRepo, tokenService)
	dispatcher := queue.NewDispatcher(rdb, cfg.Queue.Key)
	entryService := service.NewEntryService(entryRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Auth:    authService,
		Tokens:  tokenService,
		Entries: entryService,
		Users:   userRepo,
		Mongo:   db,
		Redis:   rdb,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting API server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

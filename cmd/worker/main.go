// Package main is the entry point for the diary entry-processor worker. It
// runs independently of the API server, pulling dispatched entry ids from the
// shared queue.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/openjournal/diary-system/internal/core/service"
	"github.com/openjournal/diary-system/internal/infrastructure/config"
	mongodb "github.com/openjournal/diary-system/internal/infrastructure/db/mongo"
	redisdb "github.com/openjournal/diary-system/internal/infrastructure/db/redis"
	"github.com/openjournal/diary-system/internal/infrastructure/queue"
	"github.com/openjournal/diary-system/pkg/logger"
)

// processText is the pluggable enrichment step applied to each entry.
func processText(text string) (string, error) {
	_ = text
	return "a", nil
}

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

	entryRepo := mongodb.NewEntryRepository(db)
	processor := service.NewEntryProcessor(entryRepo, processText, log)
	consumer := queue.NewConsumer(rdb, cfg.Queue.Key, processor, cfg.Queue.Workers, log)

	log.Info().Int("workers", cfg.Queue.Workers).Str("queue", cfg.Queue.Key).Msg("starting entry processor")
	consumer.Start(ctx)
	log.Info().Msg("entry processor stopped")
}

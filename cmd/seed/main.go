package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"teambalancer/internal/config"
	"teambalancer/internal/logger"
	"teambalancer/internal/repository"
	"teambalancer/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes", zap.Error(err))
	}

	n, err := seed.Run(ctx, repository.NewGroupRepo(db))
	if err != nil {
		log.Fatal("Failed to seed groups", zap.Error(err))
	}
	log.Info("Database initialized", zap.String("database", cfg.MongoDatabase), zap.Int("groups", n))
}

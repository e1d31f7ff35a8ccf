package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"teambalancer/internal/app"
	"teambalancer/internal/config"
	"teambalancer/internal/logger"
	"teambalancer/internal/repository"
	"teambalancer/internal/seed"
	"teambalancer/internal/transport/rest"
)

// @title Team Balancer API
// @version 1.0
// @description Peer voting and balanced team generation for recurring pickup games
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	ctx := context.Background()

	var (
		repos app.Repositories
		rdb   *redis.Client
	)

	if cfg.UseMemoryStore() {
		// In-process storage and an embedded Redis, seeded with the demo groups
		mr, err := miniredis.Run()
		if err != nil {
			log.Fatal("Failed to start embedded Redis", zap.Error(err))
		}
		defer mr.Close()
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})

		repos = app.MemoryRepositories()
		n, err := seed.Run(ctx, repos.Groups)
		if err != nil {
			log.Fatal("Failed to seed memory store", zap.Error(err))
		}
		log.Info("Using in-memory store", zap.Int("groups", n))
	} else {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB", zap.Error(err))
		}
		log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

		db := mongoClient.Database(cfg.MongoDatabase)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			log.Fatal("Failed to create indexes", zap.Error(err))
		}
		repos = app.MongoRepositories(db)

		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis", zap.Error(err))
	}
	log.Info("Connected to Redis")

	a := app.New(cfg, repos, rdb, log)
	router := rest.NewRouter(a.Container())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

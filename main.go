package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tripweave/tripweave-backend/config"
	"github.com/tripweave/tripweave-backend/db"
	"github.com/tripweave/tripweave-backend/handlers"
	"github.com/tripweave/tripweave-backend/internal/events"
	"github.com/tripweave/tripweave-backend/internal/store/postgres"
	"github.com/tripweave/tripweave-backend/logger"
	"github.com/tripweave/tripweave-backend/models"
	"github.com/tripweave/tripweave-backend/router"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbURL := cfg.Database.URL()
	if err := db.RunMigrations(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConnections)
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisOptions := &redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}
	if cfg.IsProduction() {
		redisOptions.TLSConfig = &tls.Config{
			ServerName: cfg.Redis.Address,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warnw("Failed to close redis client", "error", err)
		}
	}()

	publisher := events.NewRedisPublisher(redisClient, events.Config{
		PublishTimeout:   time.Duration(cfg.EventService.PublishTimeoutSeconds) * time.Second,
		SubscribeTimeout: time.Duration(cfg.EventService.SubscribeTimeoutSeconds) * time.Second,
		EventBufferSize:  cfg.EventService.EventBufferSize,
	})

	tripStore := postgres.NewTripStore(pool)
	expenseStore := postgres.NewExpenseStore(pool)
	pollStore := postgres.NewPollStore(pool)
	taskStore := postgres.NewTaskStore(pool)
	messageStore := postgres.NewMessageStore(pool)
	activityStore := postgres.NewActivityStore(pool)

	guard := models.NewAccessGuard(tripStore)
	tripModel := models.NewTripModel(tripStore, guard, publisher)
	expenseModel := models.NewExpenseModel(expenseStore, tripStore, guard, publisher)
	pollModel := models.NewPollModel(pollStore, guard, publisher)
	taskModel := models.NewTaskModel(taskStore, guard, publisher)
	messageModel := models.NewMessageModel(messageStore, guard, publisher)
	activityModel := models.NewActivityModel(activityStore, guard, publisher)

	deps := router.Dependencies{
		Config: cfg,
		TripHandler: handlers.NewTripHandler(
			tripModel, expenseModel, pollModel, taskModel, messageModel, activityModel),
		InvitationHandler: handlers.NewInvitationHandler(tripModel),
		ExpenseHandler:    handlers.NewExpenseHandler(expenseModel),
		PollHandler:       handlers.NewPollHandler(pollModel),
		TaskHandler:       handlers.NewTaskHandler(taskModel),
		MessageHandler:    handlers.NewMessageHandler(messageModel),
		ActivityHandler:   handlers.NewActivityHandler(activityModel),
		HealthHandler:     handlers.NewHealthHandler(pool, redisClient, cfg.Server.Version),
		WSHandler:         handlers.NewWSHandler(guard, publisher, &cfg.Server),
		Logger:            log,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	if err := publisher.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Publisher shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}

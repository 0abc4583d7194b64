// Package main is the entry point for the haircare-match-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"haircare-match-service/internal/app/service"
	"haircare-match-service/internal/config"
	"haircare-match-service/internal/domain"
	"haircare-match-service/internal/infra/postgres"
	"haircare-match-service/internal/infra/postgres/migrations"
	"haircare-match-service/internal/infra/profile"
	rediscache "haircare-match-service/internal/infra/redis"
	"haircare-match-service/internal/job"
	"haircare-match-service/internal/logger"
	"haircare-match-service/internal/transport/httpserver"
	"haircare-match-service/internal/validator"
	"haircare-match-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting haircare-match-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repositories
	productRepo := postgres.NewProductRepository(db)
	routineRepo := postgres.NewRoutineRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	scoreRepo := postgres.NewScoreRepository(db, log.Logger)

	// Create profile service client
	profileClient := profile.New(
		profile.ClientConfig{
			BaseURL: cfg.Profile.BaseURL,
			Timeout: cfg.Profile.Timeout,
			Retry: profile.RetryConfig{
				MaxAttempts: cfg.Profile.Retry.MaxAttempts,
				WaitTime:    cfg.Profile.Retry.WaitTime,
				MaxWaitTime: cfg.Profile.Retry.MaxWaitTime,
			},
			CB: profile.CBConfig{
				MaxRequests:  cfg.Profile.CB.MaxRequests,
				Interval:     cfg.Profile.CB.Interval,
				Timeout:      cfg.Profile.CB.Timeout,
				FailureRatio: cfg.Profile.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create score cache (optional, based on config)
	var scoreCache domain.ScoreCache
	if cfg.Cache.Enabled {
		scoreCache = rediscache.NewScoreCache(
			rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix),
		)
		log.Info("score cache enabled",
			zap.Duration("score_ttl", cfg.Cache.ScoreTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("score cache disabled")
	}

	// Create services
	matchParams := service.DefaultMatchParams()
	matchParams.Engagement.ExactMatchBoost = cfg.Scoring.ExactMatchBoost
	matchParams.Engagement.MinSimilarity = cfg.Scoring.MinSimilarity
	matchParams.Engagement.MaxReasons = cfg.Scoring.MaxReasons
	matchParams.Ingredient.MaxReasons = cfg.Scoring.MaxReasons
	matchParams.ProductChunkSize = cfg.Scoring.ProductChunkSize
	matchParams.CacheTTL = cfg.Cache.ScoreTTL

	matchSvc := service.NewMatchService(
		productRepo, routineRepo, interactionRepo, scoreRepo,
		profileClient, scoreCache, matchParams, log.Logger,
	)
	interactionSvc := service.NewInteractionService(
		interactionRepo, scoreRepo, profileClient, scoreCache, matchSvc, log.Logger,
	)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		matchSvc,
		interactionSvc,
		db,
		v,
		log.Logger,
	)

	// Start rescore scheduler with distributed locking
	scheduler := job.NewRescoreScheduler(
		matchSvc,
		job.RescoreConfig{
			Interval:  cfg.Rescore.Interval,
			Timeout:   cfg.Rescore.Timeout,
			OnStartup: cfg.Rescore.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Rescore.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		scheduler.Stop()

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// @title                      Legal Aid Practice API
// @version                    1.0
// @description                Clients, calendar events and case-search feedback for a legal aid practice.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/api"
	"github.com/legalaid/practice-api/internal/core/service"
	"github.com/legalaid/practice-api/internal/infrastructure/config"
	"github.com/legalaid/practice-api/internal/infrastructure/db/mongo"
	"github.com/legalaid/practice-api/internal/infrastructure/db/redis"
	"github.com/legalaid/practice-api/internal/infrastructure/http/handlers"
	"github.com/legalaid/practice-api/internal/infrastructure/queue"
	"github.com/legalaid/practice-api/pkg/logger"
)

func main() {
	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "practice-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	accountRepo := mongo.NewAccountRepository(db)
	eventRepo := mongo.NewEventRepository(db)
	feedbackRepo := mongo.NewFeedbackRepository(db)

	if err := mongo.EnsureIndexes(ctx, accountRepo, eventRepo, feedbackRepo); err != nil {
		return err
	}

	// --- Redis (optional) ---
	feedbackService := service.NewFeedbackService(feedbackRepo, nil, log)
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	switch {
	case errors.Is(err, redis.ErrDisabled):
		log.Info().Msg("redis not configured, feedback stats will not be cached")
	case err != nil:
		log.Warn().Err(err).Msg("could not connect to redis, feedback stats will not be cached")
	default:
		defer rdb.Close()
		cache := redis.NewStatsCache(rdb, cfg.Redis.StatsCacheTTL)
		feedbackService = service.NewFeedbackService(feedbackRepo, cache, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Client reference cleanup workers ---
	dispatcher := queue.NewDispatcher(cfg.Cleanup.Workers, eventRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	clientService := service.NewClientService(accountRepo, dispatcher, log)
	eventService := service.NewEventService(eventRepo, accountRepo, log)
	settingsService := service.NewSettingsService(accountRepo, log)

	if cfg.Seed.Enabled {
		created, err := service.NewSeeder(accountRepo, cfg.Seed.Password, log).Seed(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("created", created).Msg("seed complete")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Clients:  clientService,
		Events:   eventService,
		Feedback: feedbackService,
		Settings: settingsService,
		Checks:   []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/media-site/internal/api"
	"github.com/media-site/internal/authors"
	"github.com/media-site/internal/cache"
	"github.com/media-site/internal/config"
	"github.com/media-site/internal/database"
	"github.com/media-site/internal/repository"
	"github.com/media-site/internal/service"
	"github.com/media-site/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json")
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting media site server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	// Cache store: Redis when configured and reachable, in-memory otherwise
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	store, err := cache.NewStoreWithFallback(context.Background(), redisClient, cfg.Cache.MemorySize, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache store")
	}

	// User service client
	conn, err := authors.Dial(cfg.Authors.RPCAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up user service connection")
	}
	defer conn.Close()

	users, err := authors.NewGRPCClient(conn, authors.DefaultPackage, cfg.Authors.RPCTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build user service client")
	}
	resolver := authors.NewResolver(users, cache.Instrument(store, "author"), cfg.Authors.CacheTTL, cfg.Authors.FanoutLimit, log)

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, resolver, service.Options{
		HomeSections: cfg.Site.HomeSections,
		EntityCache:  cache.Instrument(store, "entity"),
	}, log)

	// Initialize router
	router := api.NewRouter(services, cfg, cache.Instrument(store, "response"), db, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

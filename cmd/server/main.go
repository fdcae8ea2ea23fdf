package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/umayucar/search-engine/internal/api"
	"github.com/umayucar/search-engine/internal/cache"
	"github.com/umayucar/search-engine/internal/config"
	"github.com/umayucar/search-engine/internal/fetch"
	"github.com/umayucar/search-engine/internal/provider"
	"github.com/umayucar/search-engine/internal/publisher"
	"github.com/umayucar/search-engine/internal/scheduler"
	"github.com/umayucar/search-engine/internal/service"
	"github.com/umayucar/search-engine/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	redisClient, err := cache.NewClient(cache.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("connected to redis")

	resultCache := cache.NewRedisCache(redisClient)

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	contentStore := postgres.NewContentStore(db)
	txManager := postgres.NewTransactionManager(db)

	syncService := service.NewSyncService(
		buildProviders(cfg),
		contentStore,
		resultCache,
		txManager,
		pub,
		logger,
		cfg.Cache.StatusTTL,
	)
	searchService := service.NewSearchService(
		contentStore,
		resultCache,
		logger,
		cfg.Cache.SearchTTL,
		cfg.Cache.StatsTTL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Sync.Interval > 0 {
		sched := scheduler.NewScheduler(syncService, cfg.Sync.Interval, logger)
		go func() {
			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler error", "error", err)
			}
		}()
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.NewHandler(syncService, searchService, logger))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting search engine server",
		"addr", cfg.Server.Addr(),
		"providers", len(cfg.Providers),
		"sync_interval", cfg.Sync.Interval,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func buildProviders(cfg *config.Config) []service.Provider {
	fetcher := fetch.NewHTTPFetcher(cfg.Sync.FetchTimeout)

	providers := make([]service.Provider, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		var parser provider.Parser
		switch p.Format {
		case "xml":
			parser = provider.NewXMLParser()
		default:
			parser = provider.NewJSONParser()
		}

		providers = append(providers, service.Provider{
			Name:     p.Name,
			Endpoint: p.URL,
			Fetcher:  fetcher,
			Parser:   parser,
		})
	}
	return providers
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

// Command sync runs a single content sync across all configured providers
// and prints the per-provider outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/umayucar/search-engine/internal/cache"
	"github.com/umayucar/search-engine/internal/config"
	"github.com/umayucar/search-engine/internal/fetch"
	"github.com/umayucar/search-engine/internal/provider"
	"github.com/umayucar/search-engine/internal/service"
	"github.com/umayucar/search-engine/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := cache.NewClient(cache.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to redis:", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	resultCache := cache.NewRedisCache(redisClient)

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

	syncService := service.NewSyncService(
		providers,
		postgres.NewContentStore(db),
		resultCache,
		postgres.NewTransactionManager(db),
		nil,
		logger,
		cfg.Cache.StatusTTL,
	)

	ctx := context.Background()

	fmt.Println("Starting content synchronization...")

	result := syncService.SyncAll(ctx)

	if err := syncService.StoreLastSyncStatus(ctx, result); err != nil {
		fmt.Fprintln(os.Stderr, "failed to store sync status:", err)
	}

	if result.Success {
		fmt.Printf("Successfully synced %d items from all providers\n", result.TotalSynced)
	} else {
		fmt.Println("Sync completed with errors:")
	}
	for _, pr := range result.ProviderResults {
		if pr.Success {
			fmt.Printf("  - %s: %d items\n", pr.Provider, pr.SyncedCount)
		} else {
			fmt.Printf("  - %s: failed - %s\n", pr.Provider, pr.Error)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/umayucar/search-engine/internal/cache"
	"github.com/umayucar/search-engine/internal/domain"
	"github.com/umayucar/search-engine/internal/metrics"
	"github.com/umayucar/search-engine/internal/provider"
	"github.com/umayucar/search-engine/internal/scoring"
)

const lastSyncStatusKey = "last_sync_status"

// Provider bundles everything the orchestrator needs for one upstream
// source: a display name, one endpoint, the fetcher, and the format parser.
type Provider struct {
	Name     string
	Endpoint string
	Fetcher  Fetcher
	Parser   provider.Parser
}

// SyncService drives fetch → parse → normalize → upsert → score for every
// configured provider. A failure in one provider is isolated and recorded;
// the run itself never fails.
type SyncService struct {
	providers []Provider
	store     ContentStore
	cache     Cache
	txManager TransactionManager
	publisher Publisher // optional, nil disables event publishing
	logger    *slog.Logger
	statusTTL time.Duration

	// group collapses concurrent sync triggers into a single run; two
	// overlapping runs upserting the same identity pair would have no
	// defined ordering.
	group singleflight.Group

	now func() time.Time
}

func NewSyncService(
	providers []Provider,
	store ContentStore,
	resultCache Cache,
	txManager TransactionManager,
	pub Publisher,
	logger *slog.Logger,
	statusTTL time.Duration,
) *SyncService {
	return &SyncService{
		providers: providers,
		store:     store,
		cache:     resultCache,
		txManager: txManager,
		publisher: pub,
		logger:    logger,
		statusTTL: statusTTL,
		now:       time.Now,
	}
}

// SyncAll runs a full sync across all providers in their configured order
// and returns the aggregate result. Concurrent callers share one in-flight
// run.
func (s *SyncService) SyncAll(ctx context.Context) *domain.SyncRunResult {
	v, _, _ := s.group.Do("sync", func() (any, error) {
		return s.runAll(ctx), nil
	})
	return v.(*domain.SyncRunResult)
}

func (s *SyncService) runAll(ctx context.Context) *domain.SyncRunResult {
	start := s.now()

	result := &domain.SyncRunResult{
		ProviderResults: make([]domain.ProviderResult, 0, len(s.providers)),
		Errors:          []string{},
	}

	for _, p := range s.providers {
		count, err := s.syncProvider(ctx, p)
		if err != nil {
			s.logger.Error("provider sync failed", "provider", p.Name, "error", err)
			metrics.ProviderFailures.WithLabelValues(p.Name).Inc()
			result.ProviderResults = append(result.ProviderResults, domain.ProviderResult{
				Provider: p.Name,
				Success:  false,
				Error:    err.Error(),
			})
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		s.logger.Info("provider synced", "provider", p.Name, "count", count)
		result.ProviderResults = append(result.ProviderResults, domain.ProviderResult{
			Provider:    p.Name,
			Success:     true,
			SyncedCount: count,
		})
		result.TotalSynced += count
	}

	result.Success = len(result.Errors) == 0

	// Stale pages and stats must not outlive the run.
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Error("cache invalidation failed", "error", err)
	}

	outcome := "success"
	if !result.Success {
		outcome = "partial"
	}
	metrics.SyncRuns.WithLabelValues(outcome).Inc()
	metrics.SyncedItems.Add(float64(result.TotalSynced))
	metrics.SyncDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("content sync completed",
		"total_synced", result.TotalSynced,
		"success", result.Success,
		"duration", time.Since(start),
	)

	return result
}

// syncProvider runs the full pipeline for one provider. Any failure at any
// stage fails this provider's whole batch; a partially applied batch is
// possible only across already-committed records, never within one record.
func (s *SyncService) syncProvider(ctx context.Context, p Provider) (int, error) {
	data, err := p.Fetcher.Fetch(ctx, p.Endpoint)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}

	items, err := p.Parser.Parse(data)
	if err != nil {
		return 0, err
	}

	contents, err := p.Parser.Normalize(items, p.Name)
	if err != nil {
		return 0, err
	}

	synced := 0
	for i := range contents {
		c := &contents[i]

		isNew, err := s.saveContent(ctx, c)
		if err != nil {
			return 0, fmt.Errorf("save content %q: %w", c.ProviderID, err)
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, c, isNew); err != nil {
				s.logger.Warn("publish content event failed",
					"provider_id", c.ProviderID,
					"error", err,
				)
			}
		}

		synced++
	}

	return synced, nil
}

// saveContent upserts one record and recomputes its score in the same
// transaction, so a stored row never carries a stale score.
func (s *SyncService) saveContent(ctx context.Context, c *domain.Content) (bool, error) {
	isNew := false

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.store.Exists(txCtx, c.ProviderID, c.ProviderName)
		if err != nil {
			return fmt.Errorf("lookup content: %w", err)
		}
		isNew = !exists

		id, err := s.store.Upsert(txCtx, c)
		if err != nil {
			return fmt.Errorf("upsert content: %w", err)
		}
		c.ID = id

		c.Score = scoring.Score(c, s.now())
		if err := s.store.UpdateScore(txCtx, id, c.Score); err != nil {
			return fmt.Errorf("update score: %w", err)
		}

		return nil
	})

	return isNew, err
}

// StoreLastSyncStatus stamps the result and keeps it in the short-lived
// last-status slot.
func (s *SyncService) StoreLastSyncStatus(ctx context.Context, result *domain.SyncRunResult) error {
	stamped := *result
	stamped.SyncedAt = s.now().UTC()
	return s.cache.Set(ctx, lastSyncStatusKey, stamped, s.statusTTL)
}

// LastSyncStatus returns the most recent stored run summary, or nil when no
// sync has been performed within the status TTL.
func (s *SyncService) LastSyncStatus(ctx context.Context) (*domain.SyncRunResult, error) {
	var result domain.SyncRunResult
	err := s.cache.Get(ctx, lastSyncStatusKey, &result)
	if errors.Is(err, cache.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

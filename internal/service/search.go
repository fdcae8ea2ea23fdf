package service

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/umayucar/search-engine/internal/cache"
	"github.com/umayucar/search-engine/internal/domain"
)

const statsCacheKey = "content_stats"

// SearchService answers filtered, sorted, paginated queries over the
// normalized corpus, memoizing result pages and stats in the cache. Scores
// are computed at sync time, so ordering is a plain indexed sort here.
type SearchService struct {
	store     ContentStore
	cache     Cache
	logger    *slog.Logger
	searchTTL time.Duration
	statsTTL  time.Duration
}

func NewSearchService(store ContentStore, resultCache Cache, logger *slog.Logger, searchTTL, statsTTL time.Duration) *SearchService {
	return &SearchService{
		store:     store,
		cache:     resultCache,
		logger:    logger,
		searchTTL: searchTTL,
		statsTTL:  statsTTL,
	}
}

// Search returns one page of matching records plus the total match count.
// The filter is assumed validated by the HTTP boundary.
func (s *SearchService) Search(ctx context.Context, filter domain.SearchFilter) (*domain.SearchResult, error) {
	key := searchCacheKey(filter)

	var cached domain.SearchResult
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("search cache read failed", "error", err)
	}

	items, total, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search contents: %w", err)
	}

	result := &domain.SearchResult{Items: items, Total: total}

	if err := s.cache.Set(ctx, key, result, s.searchTTL); err != nil {
		s.logger.Warn("search cache write failed", "error", err)
	}

	return result, nil
}

// Stats returns aggregate corpus statistics, cached under a fixed key.
func (s *SearchService) Stats(ctx context.Context) (*domain.ContentStats, error) {
	var cached domain.ContentStats
	err := s.cache.Get(ctx, statsCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("stats cache read failed", "error", err)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, s.statsTTL); err != nil {
		s.logger.Warn("stats cache write failed", "error", err)
	}

	return stats, nil
}

func searchCacheKey(filter domain.SearchFilter) string {
	payload, _ := json.Marshal(filter)
	return fmt.Sprintf("search:%x", md5.Sum(payload))
}

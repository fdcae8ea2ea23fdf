package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/umayucar/search-engine/internal/domain"
)

type ContentStore interface {
	Exists(ctx context.Context, providerID, providerName string) (bool, error)
	Upsert(ctx context.Context, content *domain.Content) (int64, error)
	UpdateScore(ctx context.Context, id int64, score float64) error
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Content, int, error)
	Stats(ctx context.Context) (*domain.ContentStats, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
}

type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) ([]byte, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, content *domain.Content, isNew bool) error
	Close() error
}

package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/umayucar/search-engine/internal/domain"
)

// Syncer defines the sync operations the scheduler drives.
type Syncer interface {
	SyncAll(ctx context.Context) *domain.SyncRunResult
	StoreLastSyncStatus(ctx context.Context, result *domain.SyncRunResult) error
}

// Scheduler triggers a full sync run on a fixed interval, starting with an
// immediate run.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	result := s.syncer.SyncAll(syncCtx)
	if err := s.syncer.StoreLastSyncStatus(syncCtx, result); err != nil {
		s.logger.Error("store sync status failed", "error", err)
	}

	if !result.Success {
		s.logger.Warn("scheduled sync completed with errors", "errors", result.Errors)
	}
}

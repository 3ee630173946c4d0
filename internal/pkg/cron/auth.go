package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/auth"
)

// TokenJobs contains refresh-token housekeeping jobs
type TokenJobs struct {
	tokenRepo auth.RefreshTokenRepository
	logger    *slog.Logger
	now       func() time.Time
}

func NewTokenJobs(tokenRepo auth.RefreshTokenRepository, logger *slog.Logger) *TokenJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenJobs{
		tokenRepo: tokenRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("purge_expired_refresh_tokens", interval, j.PurgeExpiredRefreshTokens)
}

// PurgeExpiredRefreshTokens deletes refresh tokens that expired or were revoked before now.
func (j *TokenJobs) PurgeExpiredRefreshTokens(ctx context.Context) error {
	purged, err := j.tokenRepo.PurgeExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to purge refresh tokens: %w", err)
	}
	if purged > 0 {
		j.logger.Info("Cron: Purged refresh tokens", "count", purged)
	}
	return nil
}

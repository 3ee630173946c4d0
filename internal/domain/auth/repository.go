package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists refresh tokens as one-way hashes.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

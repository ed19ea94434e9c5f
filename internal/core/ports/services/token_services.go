package services

import (
	"context"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// TokenSvcFacade handles JWT access tokens and rotating refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a new JWT access token for the given user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new raw refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// StoreRefreshToken persists the hash of a newly issued refresh token.
	StoreRefreshToken(ctx context.Context, userID string, rawToken string, expiryTime time.Time) error

	// ValidateRefreshToken checks a raw refresh token against the stored hash
	// and expiry, returning the owning user when valid.
	ValidateRefreshToken(ctx context.Context, userID string, rawToken string) (*domain.User, error)

	// ClearRefreshToken invalidates the stored refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

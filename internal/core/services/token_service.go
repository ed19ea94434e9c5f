package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/platform/config"
	"github.com/tsinsights/timesheet_insights_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for JWT access tokens and
// rotating hashed refresh tokens.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	return rawRefreshToken, expiryTime, nil
}

func (s *tokenService) StoreRefreshToken(ctx context.Context, userID string, rawToken string, expiryTime time.Time) error {
	hash := utils.HashRefreshToken(rawToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, hash, expiryTime); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, rawToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(rawToken, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

func (s *tokenService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

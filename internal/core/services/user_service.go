package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
	"github.com/tsinsights/timesheet_insights_app/internal/middleware"
	"github.com/tsinsights/timesheet_insights_app/internal/utils"
)

// userService provides user management and password verification. It is the
// single implementation of password hashing/checking in the application;
// handlers never re-implement auth logic inline.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := domain.RoleMember
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AuthenticateUser verifies a username/password pair. It returns the same
// error for an unknown user and a wrong password so login responses cannot be
// used to probe for usernames.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for password change: %w", err)
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return fmt.Errorf("current password incorrect: %w", apperrors.ErrUnauthorized)
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash, time.Now()); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}

// EnsureAdminUser creates the admin principal at startup when it does not
// exist yet. An existing user with the configured username is left untouched.
func (s *userService) EnsureAdminUser(ctx context.Context, username, password string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if username == "" || password == "" {
		logger.Info("Admin bootstrap skipped, no credentials configured")
		return nil
	}

	_, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	_, err = s.CreateUser(ctx, dto.CreateUserRequest{
		Username:    username,
		Password:    password,
		DisplayName: "Administrator",
		Role:        string(domain.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	logger.Info("Admin user bootstrapped", slog.String("username", username))
	return nil
}

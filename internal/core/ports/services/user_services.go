package services

import (
	"context"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
)

// UserReaderSvc defines read operations on users.
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a specific user by their unique username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations on users.
type UserWriterSvc interface {
	// CreateUser creates a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// ChangePassword verifies the current password and stores a new hash.
	// Returns apperrors.ErrUnauthorized when the current password is wrong.
	ChangePassword(ctx context.Context, userID string, currentPassword, newPassword string) error

	// EnsureAdminUser creates the admin user at startup if it does not exist.
	EnsureAdminUser(ctx context.Context, username, password string) error
}

// UserAuthenticatorSvc verifies login credentials.
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies a username/password pair and returns the user.
	// Returns apperrors.ErrUnauthorized on any mismatch.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

package repositories

import (
	"context"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// CredentialReader defines read operations for third-party credentials.
type CredentialReader interface {
	// FindCredentialByUserID retrieves the credential row for a user.
	FindCredentialByUserID(ctx context.Context, userID string) (*domain.Credential, error)
}

// CredentialWriter defines write operations for third-party credentials.
type CredentialWriter interface {
	// SaveCredential inserts or updates the credential row for a user.
	SaveCredential(ctx context.Context, cred domain.Credential) error

	// UpdateTokens replaces the token fields after an exchange or refresh.
	UpdateTokens(ctx context.Context, userID string, accessToken, refreshToken *string, expiresAt *time.Time, updatedAt time.Time) error

	// ClearTokens nulls the token fields but keeps the rest of the row.
	ClearTokens(ctx context.Context, userID string, updatedAt time.Time) error
}

// CredentialRepositoryFacade combines all credential repository interfaces.
type CredentialRepositoryFacade interface {
	CredentialReader
	CredentialWriter
}

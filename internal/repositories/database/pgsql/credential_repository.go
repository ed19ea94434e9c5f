package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
)

type PgxCredentialRepository struct {
	db *pgxpool.Pool
}

func newPgxCredentialRepository(db *pgxpool.Pool) portsrepo.CredentialRepositoryFacade {
	return &PgxCredentialRepository{db: db}
}

var _ portsrepo.CredentialRepositoryFacade = (*PgxCredentialRepository)(nil)

func (r *PgxCredentialRepository) FindCredentialByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	query := `
		SELECT user_id, client_id, client_secret, organization, access_token, refresh_token, expires_at, created_at, last_updated_at
		FROM zoho_credentials
		WHERE user_id = $1;
	`
	var cred domain.Credential
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&cred.UserID,
		&cred.ClientID,
		&cred.ClientSecret,
		&cred.Organization,
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
		&cred.CreatedAt,
		&cred.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credential for user %s: %w", userID, err)
	}
	return &cred, nil
}

func (r *PgxCredentialRepository) SaveCredential(ctx context.Context, cred domain.Credential) error {
	query := `
        INSERT INTO zoho_credentials (user_id, client_id, client_secret, organization, access_token, refresh_token, expires_at, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (user_id) DO UPDATE SET
            client_id = EXCLUDED.client_id,
            client_secret = EXCLUDED.client_secret,
            organization = EXCLUDED.organization,
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            expires_at = EXCLUDED.expires_at,
            last_updated_at = EXCLUDED.last_updated_at;
    `
	_, err := r.db.Exec(ctx, query,
		cred.UserID,
		cred.ClientID,
		cred.ClientSecret,
		cred.Organization,
		cred.AccessToken,
		cred.RefreshToken,
		cred.ExpiresAt,
		cred.CreatedAt,
		cred.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (r *PgxCredentialRepository) UpdateTokens(ctx context.Context, userID string, accessToken, refreshToken *string, expiresAt *time.Time, updatedAt time.Time) error {
	query := `
        UPDATE zoho_credentials
        SET access_token = $1, refresh_token = $2, expires_at = $3, last_updated_at = $4
        WHERE user_id = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query, accessToken, refreshToken, expiresAt, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update credential tokens: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("credential not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCredentialRepository) ClearTokens(ctx context.Context, userID string, updatedAt time.Time) error {
	query := `
        UPDATE zoho_credentials
        SET access_token = NULL, refresh_token = NULL, expires_at = NULL, last_updated_at = $1
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to clear credential tokens: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("credential not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
	"github.com/tsinsights/timesheet_insights_app/internal/middleware"
	"github.com/tsinsights/timesheet_insights_app/internal/platform/config"
)

const tokenPath = "/oauth/v2/token"

// credentialService owns the third-party credential lifecycle. The database
// row is the sole source of truth; there is no process-global credential
// state.
type credentialService struct {
	cfg            *config.Config
	credentialRepo portsrepo.CredentialRepositoryFacade
}

// NewCredentialService creates a new credential service.
func NewCredentialService(cfg *config.Config, credentialRepo portsrepo.CredentialRepositoryFacade) portssvc.CredentialSvcFacade {
	return &credentialService{cfg: cfg, credentialRepo: credentialRepo}
}

var _ portssvc.CredentialSvcFacade = (*credentialService)(nil)

// Connect stores the client fields and attempts a token exchange. A failed
// exchange degrades to a token-less link instead of failing the operation,
// so the user does not lose the saved client fields over a transient
// upstream error.
func (s *credentialService) Connect(ctx context.Context, userID string, req dto.ZohoConnectRequest) (domain.ConnectOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	cred := domain.Credential{
		UserID:       userID,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Organization: req.Organization,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	token, err := s.exchangeToken(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		logger.Warn("Token exchange failed, linking credential without token", slog.String("error", err.Error()))
	} else {
		cred.AccessToken = &token.AccessToken
		if token.RefreshToken != "" {
			cred.RefreshToken = &token.RefreshToken
		}
		if !token.Expiry.IsZero() {
			expiry := token.Expiry
			cred.ExpiresAt = &expiry
		}
	}

	if saveErr := s.credentialRepo.SaveCredential(ctx, cred); saveErr != nil {
		return domain.ConnectOutcome{}, fmt.Errorf("failed to persist credential: %w", saveErr)
	}

	return domain.ConnectOutcome{Linked: true, TokenAcquired: err == nil}, nil
}

// Disconnect clears the token fields but keeps client id, secret and
// organization. Disconnecting an unlinked user is a no-op.
func (s *credentialService) Disconnect(ctx context.Context, userID string) error {
	err := s.credentialRepo.ClearTokens(ctx, userID, time.Now())
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to disconnect credential: %w", err)
	}
	return nil
}

// Status reports whether a non-empty, non-expired token is present. A
// degraded (token-less) link deliberately reads as not connected so the UI
// is never told a sync could work when it cannot.
func (s *credentialService) Status(ctx context.Context, userID string) (domain.CredentialStatus, error) {
	cred, err := s.credentialRepo.FindCredentialByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.CredentialStatus{Connected: false}, nil
		}
		return domain.CredentialStatus{}, fmt.Errorf("failed to read credential status: %w", err)
	}

	if !cred.HasUsableToken(time.Now()) {
		return domain.CredentialStatus{Connected: false}, nil
	}
	return domain.CredentialStatus{Connected: true, ExpiresAt: cred.ExpiresAt}, nil
}

// UsableCredential returns the credential with a valid access token,
// refreshing it first when expired.
func (s *credentialService) UsableCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	cred, err := s.credentialRepo.FindCredentialByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrCredentialsMissing
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	if cred.HasUsableToken(time.Now()) {
		return cred, nil
	}

	refreshed, err := s.refreshCredential(ctx, cred)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// refreshCredential obtains a fresh access token using the stored refresh
// token, or a fresh exchange when no refresh token exists, and persists the
// result.
func (s *credentialService) refreshCredential(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var token *oauth2.Token
	var err error
	if cred.RefreshToken != nil && *cred.RefreshToken != "" {
		conf := &oauth2.Config{
			ClientID:     cred.ClientID,
			ClientSecret: cred.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: s.cfg.ZohoAccountsBaseURL + tokenPath},
		}
		token, err = conf.TokenSource(ctx, &oauth2.Token{RefreshToken: *cred.RefreshToken}).Token()
	} else {
		token, err = s.exchangeToken(ctx, cred.ClientID, cred.ClientSecret)
	}
	if err != nil {
		logger.Warn("Token refresh failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: token refresh failed", apperrors.ErrUpstreamAuthExpired)
	}

	cred.AccessToken = &token.AccessToken
	if token.RefreshToken != "" {
		cred.RefreshToken = &token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		cred.ExpiresAt = &expiry
	} else {
		cred.ExpiresAt = nil
	}

	if err := s.credentialRepo.UpdateTokens(ctx, cred.UserID, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	return cred, nil
}

func (s *credentialService) exchangeToken(ctx context.Context, clientID, clientSecret string) (*oauth2.Token, error) {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     s.cfg.ZohoAccountsBaseURL + tokenPath,
		Scopes:       []string{"ZohoPeople.timetracker.READ"},
	}
	token, err := conf.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

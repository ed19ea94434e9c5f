package services

import (
	"context"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
)

// CredentialSvcFacade manages the third-party credential lifecycle:
// Unlinked -> Linked(tokenPresent) -> Expired -> Unlinked.
type CredentialSvcFacade interface {
	// Connect stores the client fields and attempts a token exchange. A
	// failed exchange still links the credential, degraded to token-less;
	// the outcome reports which of the two happened.
	Connect(ctx context.Context, userID string, req dto.ZohoConnectRequest) (domain.ConnectOutcome, error)

	// Disconnect clears the token fields but retains client id, secret and
	// organization so a re-connect does not require re-entering them.
	Disconnect(ctx context.Context, userID string) error

	// Status is a pure read reporting whether a non-empty, non-expired
	// access token is present.
	Status(ctx context.Context, userID string) (domain.CredentialStatus, error)

	// UsableCredential returns a credential carrying a valid access token,
	// refreshing it first when expired. Returns ErrCredentialsMissing when
	// the user never connected and ErrUpstreamAuthExpired when no usable
	// token can be obtained.
	UsableCredential(ctx context.Context, userID string) (*domain.Credential, error)
}

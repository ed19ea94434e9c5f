package domain

import "time"

// Credential is the single third-party (Zoho People style) linkage for a user.
// Disconnecting clears the token fields but keeps client id/secret/organization
// so re-connecting does not require re-entering them.
type Credential struct {
	UserID       string     `json:"userID"`
	ClientID     string     `json:"clientID"`
	ClientSecret string     `json:"-"`
	Organization string     `json:"organization"`
	AccessToken  *string    `json:"-"`
	RefreshToken *string    `json:"-"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	AuditFields
}

// HasUsableToken reports whether a non-empty, non-expired access token is
// present. A degraded (token-less) link deliberately reads as not connected.
func (c Credential) HasUsableToken(now time.Time) bool {
	if c.AccessToken == nil || *c.AccessToken == "" {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return true
}

// ConnectOutcome distinguishes a fully linked credential from a degraded
// (token-less) link after a failed token exchange.
type ConnectOutcome struct {
	Linked        bool `json:"linked"`
	TokenAcquired bool `json:"tokenAcquired"`
}

// CredentialStatus is the pure read reported to the dashboard.
type CredentialStatus struct {
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

package dto

import "time"

// ZohoConnectRequest carries the third-party client fields. The client secret
// is accepted here but never echoed back in any response.
type ZohoConnectRequest struct {
	ClientID     string `json:"clientId" binding:"required"`
	ClientSecret string `json:"clientSecret" binding:"required"`
	Organization string `json:"organization" binding:"required"`
}

// ZohoConnectResponse reports whether the credential was linked and whether a
// token was actually acquired (a failed exchange degrades to a token-less
// link rather than failing the whole operation).
type ZohoConnectResponse struct {
	Success       bool   `json:"success"`
	Linked        bool   `json:"linked"`
	TokenAcquired bool   `json:"tokenAcquired"`
	Message       string `json:"message,omitempty"`
}

// ZohoStatusResponse reports whether a usable (non-expired) token is present.
type ZohoStatusResponse struct {
	Success   bool       `json:"success"`
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

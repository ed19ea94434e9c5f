package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid authentication credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but lacks permission.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token has expired.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrUpstreamAuthExpired indicates the third-party access token is invalid or
// expired. Callers must be able to distinguish this from other upstream
// failures so the client can prompt for re-linking instead of blindly retrying.
var ErrUpstreamAuthExpired = errors.New("upstream authorization expired")

// ErrUpstreamUnavailable indicates the third-party call failed for a reason
// other than authorization.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrSyncInProgress indicates a timesheet sync for the same user is already running.
var ErrSyncInProgress = errors.New("sync already in progress")

// ErrCredentialsMissing indicates the user has not linked a third-party account.
var ErrCredentialsMissing = errors.New("third-party credentials not configured")

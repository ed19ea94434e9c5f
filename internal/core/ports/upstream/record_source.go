package upstream

import (
	"context"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// Source names reported by RecordSource implementations.
const (
	SourceZoho    = "zoho"
	SourceFixture = "fixture"
)

// RecordSource provides the raw timesheet records for one user and one closed
// date interval. Which implementation is used (the real upstream or the
// fixture generator) is chosen by configuration; an empty upstream result is
// returned as-is and never silently replaced with generated data.
type RecordSource interface {
	// Name identifies the source so callers and tests can assert which one
	// produced the data.
	Name() string

	// FetchRecords retrieves the records for the interval. Implementations
	// must return apperrors.ErrUpstreamAuthExpired when the upstream rejects
	// the authorization, and must not retry failed calls.
	FetchRecords(ctx context.Context, userID string, rng domain.DateRange) ([]domain.RawTimesheetRecord, error)
}

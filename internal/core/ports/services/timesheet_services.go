package services

import (
	"context"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// TimesheetSvcFacade runs the sync pipeline for one user and one date window:
// fetch raw records, aggregate, and transactionally replace the stored data.
type TimesheetSvcFacade interface {
	// Sync resolves the range token (from/to only apply to "Custom range"),
	// fetches, aggregates and persists. Concurrent syncs for the same user
	// are rejected with apperrors.ErrSyncInProgress. A failed fetch leaves
	// the stored data untouched.
	Sync(ctx context.Context, userID string, rangeToken, from, to string) (domain.SyncStats, error)
}

// ReportingSvcFacade exposes the stored aggregates to the presentation layer.
type ReportingSvcFacade interface {
	// GetTimesheetData returns the stored entries, rollups and headline stats.
	GetTimesheetData(ctx context.Context, userID string) (*domain.TimesheetData, error)
}

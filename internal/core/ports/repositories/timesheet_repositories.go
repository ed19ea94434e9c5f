package repositories

import (
	"context"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// TimesheetReader defines read operations for stored timesheet data.
type TimesheetReader interface {
	// FindEntriesByUserID retrieves all stored time entries for a user,
	// ordered by work date.
	FindEntriesByUserID(ctx context.Context, userID string) ([]domain.TimeEntry, error)

	// FindProjectSummaries retrieves the per-project rollups for a user.
	FindProjectSummaries(ctx context.Context, userID string) ([]domain.HoursSummary, error)

	// FindEmployeeSummaries retrieves the per-employee rollups for a user.
	FindEmployeeSummaries(ctx context.Context, userID string) ([]domain.HoursSummary, error)
}

// TimesheetWriter defines the write operation for a completed sync.
type TimesheetWriter interface {
	// ReplaceUserTimesheetData makes the stored state reflect exactly the
	// given aggregation result for the user: deletes the user's entries and
	// summaries, inserts the new entries, and upserts the summaries, all
	// within a single database transaction. A failure rolls back everything.
	ReplaceUserTimesheetData(ctx context.Context, userID string, result domain.AggregationResult, syncedAt time.Time) error
}

// TimesheetRepositoryFacade combines all timesheet repository interfaces.
type TimesheetRepositoryFacade interface {
	TimesheetReader
	TimesheetWriter
}

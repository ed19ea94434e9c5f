package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/core/ports/upstream"
	"github.com/tsinsights/timesheet_insights_app/internal/middleware"
)

// timesheetService runs the sync pipeline: resolve the date window, fetch raw
// records from the configured source, aggregate them, and transactionally
// replace the user's stored data.
type timesheetService struct {
	source        upstream.RecordSource
	timesheetRepo portsrepo.TimesheetRepositoryFacade
	guard         *syncGuard
}

// NewTimesheetService creates a new timesheet sync service.
func NewTimesheetService(source upstream.RecordSource, timesheetRepo portsrepo.TimesheetRepositoryFacade) portssvc.TimesheetSvcFacade {
	return &timesheetService{
		source:        source,
		timesheetRepo: timesheetRepo,
		guard:         newSyncGuard(),
	}
}

var _ portssvc.TimesheetSvcFacade = (*timesheetService)(nil)

func (s *timesheetService) Sync(ctx context.Context, userID string, rangeToken, from, to string) (domain.SyncStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rng, err := domain.ResolveDateRange(rangeToken, time.Now(), from, to)
	if err != nil {
		return domain.SyncStats{}, err
	}

	if !s.guard.tryAcquire(userID) {
		return domain.SyncStats{}, apperrors.ErrSyncInProgress
	}
	defer s.guard.release(userID)

	// The fetch happens before any write. A failed fetch, including an
	// expired upstream authorization, leaves the stored data untouched.
	records, err := s.source.FetchRecords(ctx, userID, rng)
	if err != nil {
		return domain.SyncStats{}, fmt.Errorf("failed to fetch records: %w", err)
	}

	result := AggregateRecords(userID, records)

	if err := s.timesheetRepo.ReplaceUserTimesheetData(ctx, userID, result, time.Now()); err != nil {
		return domain.SyncStats{}, fmt.Errorf("failed to persist sync result: %w", err)
	}

	stats := domain.SyncStats{
		TimeEntries:   len(result.Entries),
		ProjectHours:  len(result.ProjectSummaries),
		EmployeeHours: len(result.EmployeeSummaries),
	}
	logger.Info("Timesheet sync completed",
		slog.String("source", s.source.Name()),
		slog.String("from", rng.Start.Format("2006-01-02")),
		slog.String("to", rng.End.Format("2006-01-02")),
		slog.Int("entries", stats.TimeEntries),
		slog.Int("projects", stats.ProjectHours),
		slog.Int("employees", stats.EmployeeHours),
	)

	return stats, nil
}

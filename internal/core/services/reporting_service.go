package services

import (
	"context"
	"fmt"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
)

// reportingService reads the stored aggregates for the dashboard. Headline
// stats are recomputed from the stored entries so they always match what is
// actually persisted.
type reportingService struct {
	timesheetRepo portsrepo.TimesheetRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(timesheetRepo portsrepo.TimesheetRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{timesheetRepo: timesheetRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetTimesheetData(ctx context.Context, userID string) (*domain.TimesheetData, error) {
	entries, err := s.timesheetRepo.FindEntriesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}
	projectHours, err := s.timesheetRepo.FindProjectSummaries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project summaries: %w", err)
	}
	employeeHours, err := s.timesheetRepo.FindEmployeeSummaries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee summaries: %w", err)
	}

	stats := domain.DashboardStats{
		ActiveProjects:  len(projectHours),
		ActiveEmployees: len(employeeHours),
	}
	for _, entry := range entries {
		stats.BillableHours += entry.BillableHours
		stats.NonBillableHours += entry.NonBillableHours
	}
	stats.TotalHours = stats.BillableHours + stats.NonBillableHours

	return &domain.TimesheetData{
		TimeEntries:   entries,
		ProjectHours:  projectHours,
		EmployeeHours: employeeHours,
		Stats:         stats,
	}, nil
}

package services

import (
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/core/ports/upstream"
	"github.com/tsinsights/timesheet_insights_app/internal/platform/config"
)

// RecordSourceFactory builds the configured record source. The credential
// service is passed in because the real upstream client needs it for token
// access, while the fixture generator ignores it.
type RecordSourceFactory func(creds portssvc.CredentialSvcFacade) upstream.RecordSource

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, newSource RecordSourceFactory) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, repos.UserRepo)
	container.Credential = NewCredentialService(cfg, repos.CredentialRepo)

	source := newSource(container.Credential)
	container.Timesheet = NewTimesheetService(source, repos.TimesheetRepo)
	container.Reporting = NewReportingService(repos.TimesheetRepo)

	return container
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:       newPgxUserRepository(dbPool),
		CredentialRepo: newPgxCredentialRepository(dbPool),
		TimesheetRepo:  newPgxTimesheetRepository(dbPool),
	}
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portsrepo "github.com/tsinsights/timesheet_insights_app/internal/core/ports/repositories"
)

type PgxTimesheetRepository struct {
	BaseRepository
}

func newPgxTimesheetRepository(db *pgxpool.Pool) portsrepo.TimesheetRepositoryFacade {
	return &PgxTimesheetRepository{BaseRepository{Pool: db}}
}

var (
	_ portsrepo.TimesheetRepositoryFacade = (*PgxTimesheetRepository)(nil)
	_ portsrepo.RepositoryWithTx          = (*PgxTimesheetRepository)(nil)
)

// ReplaceUserTimesheetData wipes and rewrites the user's timesheet data
// inside one database transaction, so a failure partway through cannot leave
// the user without data.
func (r *PgxTimesheetRepository) ReplaceUserTimesheetData(ctx context.Context, userID string, result domain.AggregationResult, syncedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin sync transaction: %w", err)
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	for _, table := range []string{"time_entries", "project_summaries", "employee_summaries"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = $1;", table), userID); err != nil {
			return fmt.Errorf("failed to clear %s for user %s: %w", table, userID, err)
		}
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO time_entries (entry_id, user_id, external_record_id, work_date, project_name, employee_name, job_name, billable_hours, non_billable_hours, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, entry := range result.Entries {
		batch.Queue(entryQuery,
			entry.EntryID,
			entry.UserID,
			entry.ExternalRecordID,
			entry.WorkDate,
			entry.ProjectName,
			entry.EmployeeName,
			entry.JobName,
			entry.BillableHours,
			entry.NonBillableHours,
			entry.TotalHours,
		)
	}

	summaryQuery := `
		INSERT INTO %s (user_id, name, billable_hours, non_billable_hours, total_hours, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, name) DO UPDATE SET
			billable_hours = EXCLUDED.billable_hours,
			non_billable_hours = EXCLUDED.non_billable_hours,
			total_hours = EXCLUDED.total_hours,
			last_synced_at = EXCLUDED.last_synced_at;
	`
	for _, summary := range result.ProjectSummaries {
		batch.Queue(fmt.Sprintf(summaryQuery, "project_summaries"),
			userID, summary.Name, summary.BillableHours, summary.NonBillableHours, summary.TotalHours, syncedAt)
	}
	for _, summary := range result.EmployeeSummaries {
		batch.Queue(fmt.Sprintf(summaryQuery, "employee_summaries"),
			userID, summary.Name, summary.BillableHours, summary.NonBillableHours, summary.TotalHours, syncedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute sync batch for user %s: %w", userID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit sync transaction for user %s: %w", userID, err)
	}

	return nil
}

func (r *PgxTimesheetRepository) FindEntriesByUserID(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	query := `
		SELECT entry_id, user_id, external_record_id, work_date, project_name, employee_name, job_name, billable_hours, non_billable_hours, total_hours
		FROM time_entries
		WHERE user_id = $1
		ORDER BY work_date, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.TimeEntry{}
	for rows.Next() {
		var entry domain.TimeEntry
		err := rows.Scan(
			&entry.EntryID,
			&entry.UserID,
			&entry.ExternalRecordID,
			&entry.WorkDate,
			&entry.ProjectName,
			&entry.EmployeeName,
			&entry.JobName,
			&entry.BillableHours,
			&entry.NonBillableHours,
			&entry.TotalHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", rows.Err())
	}

	return entries, nil
}

func (r *PgxTimesheetRepository) FindProjectSummaries(ctx context.Context, userID string) ([]domain.HoursSummary, error) {
	return r.findSummaries(ctx, "project_summaries", userID)
}

func (r *PgxTimesheetRepository) FindEmployeeSummaries(ctx context.Context, userID string) ([]domain.HoursSummary, error) {
	return r.findSummaries(ctx, "employee_summaries", userID)
}

func (r *PgxTimesheetRepository) findSummaries(ctx context.Context, table string, userID string) ([]domain.HoursSummary, error) {
	query := fmt.Sprintf(`
		SELECT user_id, name, billable_hours, non_billable_hours, total_hours, last_synced_at
		FROM %s
		WHERE user_id = $1
		ORDER BY name;
	`, table)
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	summaries := []domain.HoursSummary{}
	for rows.Next() {
		var summary domain.HoursSummary
		err := rows.Scan(
			&summary.UserID,
			&summary.Name,
			&summary.BillableHours,
			&summary.NonBillableHours,
			&summary.TotalHours,
			&summary.LastSyncedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		summaries = append(summaries, summary)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, rows.Err())
	}

	return summaries, nil
}

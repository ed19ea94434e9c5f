package services

import (
	"github.com/google/uuid"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// entryNamespace is the UUID namespace for deterministic entry IDs. Deriving
// the ID from (user, external record) keeps repeated aggregations of the same
// record set bit-for-bit identical.
var entryNamespace = uuid.MustParse("9f2c1f6e-7a44-4e2b-9a63-2f8b1d1c5a10")

// AggregateRecords is the pure transform from raw timesheet records into
// normalized entries, per-project and per-employee rollups, and headline
// stats. It is total over its input: an empty record set yields empty
// collections and all-zero stats.
func AggregateRecords(userID string, records []domain.RawTimesheetRecord) domain.AggregationResult {
	entries := make([]domain.TimeEntry, 0, len(records))
	for _, record := range records {
		jobName := record.JobName
		if jobName == "" {
			jobName = domain.DefaultJobName
		}
		total := record.TotalHours
		if total == 0 {
			total = record.BillableHours + record.NonBillableHours
		}
		entries = append(entries, domain.TimeEntry{
			EntryID:          uuid.NewSHA1(entryNamespace, []byte(userID+"/"+record.RecordID)).String(),
			UserID:           userID,
			ExternalRecordID: record.RecordID,
			WorkDate:         record.WorkDate,
			ProjectName:      record.ProjectName,
			EmployeeName:     record.EmployeeName,
			JobName:          jobName,
			BillableHours:    record.BillableHours,
			NonBillableHours: record.NonBillableHours,
			TotalHours:       total,
		})
	}

	projectSummaries := rollup(userID, entries, func(e domain.TimeEntry) string { return e.ProjectName })
	employeeSummaries := rollup(userID, entries, func(e domain.TimeEntry) string { return e.EmployeeName })

	stats := domain.DashboardStats{
		ActiveProjects:  len(projectSummaries),
		ActiveEmployees: len(employeeSummaries),
	}
	for _, entry := range entries {
		stats.BillableHours += entry.BillableHours
		stats.NonBillableHours += entry.NonBillableHours
	}
	stats.TotalHours = stats.BillableHours + stats.NonBillableHours

	return domain.AggregationResult{
		Entries:           entries,
		ProjectSummaries:  projectSummaries,
		EmployeeSummaries: employeeSummaries,
		Stats:             stats,
	}
}

// rollup groups entries by key and accumulates their hours. Groups are
// emitted in first-seen order so the result is deterministic for a fixed
// input sequence.
func rollup(userID string, entries []domain.TimeEntry, keyOf func(domain.TimeEntry) string) []domain.HoursSummary {
	index := make(map[string]int)
	summaries := []domain.HoursSummary{}
	for _, entry := range entries {
		key := keyOf(entry)
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, domain.HoursSummary{UserID: userID, Name: key})
		}
		summaries[i].BillableHours += entry.BillableHours
		summaries[i].NonBillableHours += entry.NonBillableHours
		summaries[i].TotalHours += entry.TotalHours
	}
	return summaries
}

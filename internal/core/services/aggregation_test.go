package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	"github.com/tsinsights/timesheet_insights_app/internal/core/services"
)

const hoursTolerance = 1e-9

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRecords() []domain.RawTimesheetRecord {
	return []domain.RawTimesheetRecord{
		{RecordID: "r1", WorkDate: day("2025-03-03"), ProjectName: "Website Redesign", EmployeeName: "Aisha Khan", JobName: "Development", BillableHours: 5, NonBillableHours: 1, TotalHours: 6},
		{RecordID: "r2", WorkDate: day("2025-03-03"), ProjectName: "Website Redesign", EmployeeName: "Ben Carter", JobName: "Design", BillableHours: 3.25, NonBillableHours: 0.5, TotalHours: 3.75},
		{RecordID: "r3", WorkDate: day("2025-03-04"), ProjectName: "Data Migration", EmployeeName: "Aisha Khan", JobName: "", BillableHours: 2, NonBillableHours: 0.75, TotalHours: 2.75},
	}
}

func TestAggregateRecords_HoursConservation(t *testing.T) {
	records := sampleRecords()
	result := services.AggregateRecords("user-1", records)

	var recordBillable, recordNonBillable float64
	for _, r := range records {
		recordBillable += r.BillableHours
		recordNonBillable += r.NonBillableHours
	}

	assert.InDelta(t, recordBillable, result.Stats.BillableHours, hoursTolerance)
	assert.InDelta(t, recordNonBillable, result.Stats.NonBillableHours, hoursTolerance)
	assert.InDelta(t, recordBillable+recordNonBillable, result.Stats.TotalHours, hoursTolerance)
}

func TestAggregateRecords_RollupsPartitionTheEntries(t *testing.T) {
	result := services.AggregateRecords("user-1", sampleRecords())

	var projectTotal, employeeTotal float64
	for _, s := range result.ProjectSummaries {
		projectTotal += s.TotalHours
	}
	for _, s := range result.EmployeeSummaries {
		employeeTotal += s.TotalHours
	}

	var entryTotal float64
	for _, e := range result.Entries {
		entryTotal += e.TotalHours
	}

	assert.InDelta(t, entryTotal, projectTotal, hoursTolerance)
	assert.InDelta(t, entryTotal, employeeTotal, hoursTolerance)
	assert.Equal(t, len(result.ProjectSummaries), result.Stats.ActiveProjects)
	assert.Equal(t, len(result.EmployeeSummaries), result.Stats.ActiveEmployees)
}

func TestAggregateRecords_GroupsByProjectAndEmployee(t *testing.T) {
	result := services.AggregateRecords("user-1", sampleRecords())

	require.Len(t, result.ProjectSummaries, 2)
	assert.Equal(t, "Website Redesign", result.ProjectSummaries[0].Name)
	assert.InDelta(t, 9.75, result.ProjectSummaries[0].TotalHours, hoursTolerance)
	assert.Equal(t, "Data Migration", result.ProjectSummaries[1].Name)
	assert.InDelta(t, 2.75, result.ProjectSummaries[1].TotalHours, hoursTolerance)

	require.Len(t, result.EmployeeSummaries, 2)
	assert.Equal(t, "Aisha Khan", result.EmployeeSummaries[0].Name)
	assert.InDelta(t, 8.75, result.EmployeeSummaries[0].TotalHours, hoursTolerance)
}

func TestAggregateRecords_DefaultsMissingJobName(t *testing.T) {
	result := services.AggregateRecords("user-1", sampleRecords())

	require.Len(t, result.Entries, 3)
	assert.Equal(t, "Development", result.Entries[0].JobName)
	assert.Equal(t, domain.DefaultJobName, result.Entries[2].JobName)
}

func TestAggregateRecords_TotalFallsBackToSum(t *testing.T) {
	records := []domain.RawTimesheetRecord{
		{RecordID: "r1", WorkDate: day("2025-03-03"), ProjectName: "P", EmployeeName: "E", BillableHours: 4, NonBillableHours: 1.5, TotalHours: 0},
	}
	result := services.AggregateRecords("user-1", records)

	require.Len(t, result.Entries, 1)
	assert.InDelta(t, 5.5, result.Entries[0].TotalHours, hoursTolerance)
}

func TestAggregateRecords_Idempotent(t *testing.T) {
	records := sampleRecords()

	first := services.AggregateRecords("user-1", records)
	second := services.AggregateRecords("user-1", records)

	assert.Equal(t, first, second)
}

func TestAggregateRecords_EntryIDsStableAndScopedToUser(t *testing.T) {
	records := sampleRecords()

	first := services.AggregateRecords("user-1", records)
	second := services.AggregateRecords("user-1", records)
	other := services.AggregateRecords("user-2", records)

	assert.Equal(t, first.Entries[0].EntryID, second.Entries[0].EntryID)
	assert.NotEqual(t, first.Entries[0].EntryID, other.Entries[0].EntryID)
}

func TestAggregateRecords_EmptyInput(t *testing.T) {
	result := services.AggregateRecords("user-1", nil)

	assert.Empty(t, result.Entries)
	assert.Empty(t, result.ProjectSummaries)
	assert.Empty(t, result.EmployeeSummaries)
	assert.Equal(t, domain.DashboardStats{}, result.Stats)
}

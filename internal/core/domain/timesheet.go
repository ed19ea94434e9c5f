package domain

import "time"

// DefaultJobName is used when a raw record carries no job/task label.
const DefaultJobName = "General"

// RawTimesheetRecord is one unit of reported work as returned by the record
// source. It is immutable once retrieved and never persisted directly; it is
// transformed into a TimeEntry during sync.
type RawTimesheetRecord struct {
	RecordID         string    `json:"recordID"`
	WorkDate         time.Time `json:"workDate"`
	ProjectName      string    `json:"projectName"`
	EmployeeName     string    `json:"employeeName"`
	JobName          string    `json:"jobName"` // optional, may be empty
	ClientName       string    `json:"clientName"`
	BillableHours    float64   `json:"billableHours"`
	NonBillableHours float64   `json:"nonBillableHours"`
	TotalHours       float64   `json:"totalHours"`
	ApprovalStatus   string    `json:"approvalStatus"`
	Notes            string    `json:"notes"`
}

// TimeEntry is the normalized, per-record unit stored for an owning user.
// Entries are fully replaced on each sync, never partially updated.
type TimeEntry struct {
	EntryID          string    `json:"entryID"` // Primary Key (UUID)
	UserID           string    `json:"userID"`
	ExternalRecordID string    `json:"externalRecordID"`
	WorkDate         time.Time `json:"workDate"`
	ProjectName      string    `json:"projectName"`
	EmployeeName     string    `json:"employeeName"`
	JobName          string    `json:"jobName"`
	BillableHours    float64   `json:"billableHours"`
	NonBillableHours float64   `json:"nonBillableHours"`
	TotalHours       float64   `json:"totalHours"`
}

// HoursSummary is a per-user rollup keyed by (user, name), where name is a
// project or an employee depending on the owning collection.
type HoursSummary struct {
	UserID           string    `json:"userID"`
	Name             string    `json:"name"`
	BillableHours    float64   `json:"billableHours"`
	NonBillableHours float64   `json:"nonBillableHours"`
	TotalHours       float64   `json:"totalHours"`
	LastSyncedAt     time.Time `json:"lastSyncedAt"`
}

// DashboardStats are the headline figures shown on the dashboard.
type DashboardStats struct {
	BillableHours    float64 `json:"billableHours"`
	NonBillableHours float64 `json:"nonBillableHours"`
	TotalHours       float64 `json:"totalHours"`
	ActiveProjects   int     `json:"activeProjects"`
	ActiveEmployees  int     `json:"activeEmployees"`
}

// AggregationResult is the output of the aggregation engine for one sync.
type AggregationResult struct {
	Entries           []TimeEntry
	ProjectSummaries  []HoursSummary
	EmployeeSummaries []HoursSummary
	Stats             DashboardStats
}

// TimesheetData is what the reporting surface returns to the dashboard.
type TimesheetData struct {
	TimeEntries   []TimeEntry    `json:"timeEntries"`
	ProjectHours  []HoursSummary `json:"projectHours"`
	EmployeeHours []HoursSummary `json:"employeeHours"`
	Stats         DashboardStats `json:"stats"`
}

// SyncStats are the row counts written by one sync.
type SyncStats struct {
	TimeEntries   int `json:"timeEntries"`
	ProjectHours  int `json:"projectHours"`
	EmployeeHours int `json:"employeeHours"`
}

package dto

import "github.com/tsinsights/timesheet_insights_app/internal/core/domain"

// SyncParams are the query parameters of the sync endpoint. From/To are only
// consulted when DateRange is "Custom range".
type SyncParams struct {
	DateRange string `form:"dateRange" binding:"required,daterange"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// SyncResponse reports the row counts written by a completed sync.
type SyncResponse struct {
	Success bool             `json:"success"`
	Stats   domain.SyncStats `json:"stats"`
}

// TimesheetDataResponse wraps the stored dashboard data.
type TimesheetDataResponse struct {
	Success bool                 `json:"success"`
	Data    domain.TimesheetData `json:"data"`
}

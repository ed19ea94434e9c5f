package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
	"github.com/tsinsights/timesheet_insights_app/internal/middleware"
)

// TimesheetHandler handles sync and dashboard data requests.
type TimesheetHandler struct {
	timesheetService portssvc.TimesheetSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// NewTimesheetHandler creates a new TimesheetHandler.
func NewTimesheetHandler(ts portssvc.TimesheetSvcFacade, rs portssvc.ReportingSvcFacade) *TimesheetHandler {
	return &TimesheetHandler{timesheetService: ts, reportingService: rs}
}

// registerTimesheetRoutes sets up the routes for timesheet sync and reads.
func registerTimesheetRoutes(rg *gin.RouterGroup, timesheetService portssvc.TimesheetSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := NewTimesheetHandler(timesheetService, reportingService)

	timesheet := rg.Group("/timesheet")
	{
		timesheet.POST("/sync", h.Sync)
		timesheet.GET("/data", h.Data)
	}
}

// Sync fetches records for the requested window, aggregates and stores them.
func (h *TimesheetHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	var params dto.SyncParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid or missing dateRange")
		return
	}

	stats, err := h.timesheetService.Sync(c.Request.Context(), userID, params.DateRange, params.From, params.To)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		switch {
		case errors.Is(err, apperrors.ErrSyncInProgress):
			respondError(c, http.StatusConflict, "sync already in progress")
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrCredentialsMissing):
			respondError(c, http.StatusBadRequest, "No credential linked; connect first")
		case errors.Is(err, apperrors.ErrUpstreamAuthExpired):
			respondError(c, http.StatusUnauthorized, "Upstream authorization expired; reconnect required")
		case errors.Is(err, apperrors.ErrUpstreamUnavailable):
			respondError(c, http.StatusBadGateway, "Upstream provider unavailable")
		default:
			logger.Error("Sync failed", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Sync failed")
		}
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{Success: true, Stats: stats})
}

// Data returns the stored entries, rollups and headline stats.
func (h *TimesheetHandler) Data(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	data, err := h.reportingService.GetTimesheetData(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load timesheet data", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to load timesheet data")
		return
	}

	c.JSON(http.StatusOK, dto.TimesheetDataResponse{Success: true, Data: *data})
}

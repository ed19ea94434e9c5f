package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
	"github.com/tsinsights/timesheet_insights_app/internal/middleware"
)

// ZohoHandler handles third-party credential linking requests.
type ZohoHandler struct {
	credentialService portssvc.CredentialSvcFacade
}

// NewZohoHandler creates a new ZohoHandler.
func NewZohoHandler(cs portssvc.CredentialSvcFacade) *ZohoHandler {
	return &ZohoHandler{credentialService: cs}
}

// registerZohoRoutes sets up the routes for credential linking.
func registerZohoRoutes(rg *gin.RouterGroup, credentialService portssvc.CredentialSvcFacade) {
	h := NewZohoHandler(credentialService)

	zoho := rg.Group("/zoho")
	{
		zoho.POST("/connect", h.Connect)
		zoho.POST("/disconnect", h.Disconnect)
		zoho.GET("/status", h.Status)
	}
}

// Connect links the caller's third-party credential. The client secret is
// accepted in the request but never included in the response.
func (h *ZohoHandler) Connect(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	var req dto.ZohoConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "clientId, clientSecret and organization are required")
		return
	}

	outcome, err := h.credentialService.Connect(c.Request.Context(), userID, req)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to connect credential", slog.String("error", err.Error()))
		respondError(c, statusForError(err), "Failed to connect")
		return
	}

	resp := dto.ZohoConnectResponse{
		Success:       true,
		Linked:        outcome.Linked,
		TokenAcquired: outcome.TokenAcquired,
	}
	if !outcome.TokenAcquired {
		resp.Message = "Credential saved, but no token could be acquired"
	}
	c.JSON(http.StatusOK, resp)
}

// Disconnect clears the caller's stored tokens.
func (h *ZohoHandler) Disconnect(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	if err := h.credentialService.Disconnect(c.Request.Context(), userID); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to disconnect credential", slog.String("error", err.Error()))
		respondError(c, statusForError(err), "Failed to disconnect")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "connected": false})
}

// Status reports whether a usable token is present.
func (h *ZohoHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	status, err := h.credentialService.Status(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to read credential status", slog.String("error", err.Error()))
		respondError(c, statusForError(err), "Failed to read status")
		return
	}

	c.JSON(http.StatusOK, dto.ZohoStatusResponse{
		Success:   true,
		Connected: status.Connected,
		ExpiresAt: status.ExpiresAt,
	})
}

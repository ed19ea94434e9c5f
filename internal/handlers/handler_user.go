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

// UserHandler handles user management requests. All routes are admin-only.
type UserHandler struct {
	userService portssvc.UserSvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade) *UserHandler {
	return &UserHandler{userService: us}
}

// registerUserRoutes sets up the routes for user management.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := NewUserHandler(userService)

	users := rg.Group("/users", middleware.RequireAdmin(userService))
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:userID", h.GetUser)
	}
}

// ListUsers returns a page of users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	resp := dto.ListUsersResponse{Success: true, Users: make([]dto.UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, dto.ToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser creates a new user account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, http.StatusConflict, "Username already exists")
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, "Invalid user data")
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create user", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": dto.ToUserResponse(user)})
}

// GetUser returns a single user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userID")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load user", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.ToUserResponse(user)})
}

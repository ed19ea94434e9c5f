package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tsinsights/timesheet_insights_app/internal/apperrors"
	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	portssvc "github.com/tsinsights/timesheet_insights_app/internal/core/ports/services"
	"github.com/tsinsights/timesheet_insights_app/internal/dto"
	"github.com/tsinsights/timesheet_insights_app/internal/middleware"
	"github.com/tsinsights/timesheet_insights_app/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication. Login, refresh
// and logout are public (refresh and logout authenticate via the refresh
// cookie); me and change-password require an access token.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token, cfg)

	// Rate limit: 5 login attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	authed := r.Group("/api/v1/auth", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.GET("/me", h.Me)
		authed.POST("/change-password", h.ChangePassword)
	}
}

// Login authenticates a username/password pair, issues an access token and
// sets the rotating refresh token cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := h.issueRefreshCookie(c, user); err != nil {
		logger.Error("Failed to issue refresh token", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Token:   accessToken,
		User:    dto.ToUserResponse(user),
	})
}

// Refresh rotates the refresh token and returns a fresh access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, rawToken, ok := h.readRefreshCookie(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	user, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			respondError(c, http.StatusUnauthorized, "refresh_token_expired")
			return
		}
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "not_authenticated")
			return
		}
		logger.Error("Refresh token validation failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	if err := h.issueRefreshCookie(c, user); err != nil {
		logger.Error("Failed to rotate refresh token", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{Success: true, Token: accessToken})
}

// Logout invalidates the stored refresh token and clears the cookie. It
// succeeds even when no valid cookie is present.
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if userID, rawToken, ok := h.readRefreshCookie(c); ok {
		if _, err := h.tokenService.ValidateRefreshToken(c.Request.Context(), userID, rawToken); err == nil {
			if err := h.tokenService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
				logger.Warn("Failed to clear refresh token on logout", slog.String("error", err.Error()))
			}
		}
	}
	h.clearRefreshCookie(c)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "not_authenticated")
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load current user", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.ToUserResponse(user)})
}

// ChangePassword verifies the current password and stores a new hash.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not_authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, "Invalid new password")
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to change password", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// issueRefreshCookie generates, persists and sets a new refresh token for the
// user. The cookie value is "<userID>:<rawToken>" so refresh does not need an
// access token.
func (h *AuthHandler) issueRefreshCookie(c *gin.Context, user *domain.User) error {
	rawToken, expiry, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		return err
	}
	if err := h.tokenService.StoreRefreshToken(c.Request.Context(), user.UserID, rawToken, expiry); err != nil {
		return err
	}

	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, user.UserID+":"+rawToken, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	return nil
}

func (h *AuthHandler) readRefreshCookie(c *gin.Context) (userID, rawToken string, ok bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

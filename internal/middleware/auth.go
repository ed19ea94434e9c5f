package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
)

// UserFetcher is the minimal surface the role middleware needs from the user
// service. Declared here to avoid depending on the full service facade.
type UserFetcher interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// AuthMiddleware creates a Gin middleware handler that validates JWT access
// tokens and stores the subject user ID in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not_authenticated"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not_authenticated"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "not_authenticated"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token_expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": msg})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not_authenticated"})
			return
		}

		userID := claims.Subject

		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)

		c.Next()
	}
}

// RequireAdmin creates a Gin middleware handler that allows only users
// holding the admin role. It must run after AuthMiddleware.
func RequireAdmin(users UserFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not_authenticated"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Error("Failed to load user for role check", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not_authenticated"})
			return
		}
		if !user.IsAdmin() {
			logger.Warn("Non-admin user attempted admin action")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "forbidden"})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequirePermission creates middleware that requires a specific permission
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(PermissionConfig{}, permission)
}

// RequireAnyPermission creates middleware that requires any of the specified permissions
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return RequireAnyPermissionWithConfig(PermissionConfig{}, permissions...)
}

// RequireAnyPermissionWithConfig creates middleware that requires any of the specified permissions with custom config
func RequireAnyPermissionWithConfig(cfg PermissionConfig, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, cfg, permissions, "No authentication claims found")
			return
		}

		if !claims.HasAnyPermission(permissions...) {
			handlePermissionDenied(c, cfg, permissions, "User lacks required permission")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Permission check passed",
				zap.String("user_id", claims.UserID),
				zap.Strings("required_any", permissions),
			)
		}

		c.Next()
	}
}

func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, requiredPerms []string, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Permission denied",
			zap.String("reason", reason),
			zap.String("user_id", GetJWTUserID(c)),
			zap.Strings("required_permissions", requiredPerms),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Access denied: insufficient permissions",
		GetRequestID(c),
	))
}

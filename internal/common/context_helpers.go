// File: internal/common/context_helpers.go
package common

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ParseAuthorizationHeader returns the access token carried by an Authorization header.
// Both the bare token and "Bearer <token>" are accepted.
func ParseAuthorizationHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], AuthorizationTypeBearer):
		return parts[1]
	case len(parts) == 1:
		return parts[0]
	default:
		return ""
	}
}

// GetAccessTokenFromContext retrieves the token stored by the auth middleware.
func GetAccessTokenFromContext(c *gin.Context) string {
	return c.GetString(AccessTokenKey)
}

// LoggerFromContext returns the request logger set by the logging middleware, or nil.
func LoggerFromContext(c *gin.Context) *zap.Logger {
	l, exists := c.Get(LoggerKey)
	if !exists {
		return nil
	}
	logger, _ := l.(*zap.Logger)
	return logger
}

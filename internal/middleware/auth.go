// File: internal/middleware/auth.go
package middleware

import (
	"errors"

	"torslanda_locals_backend/internal/auth"
	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/platform/metrics"
	"torslanda_locals_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware rejects requests whose Authorization header does not resolve to a user.
// On success the identity is available from the gin context and from c.Request.Context().
func AuthMiddleware(guard *auth.Guard, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("auth_middleware")
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		identity, err := guard.Authenticate(c.Request.Context(), header)
		if err != nil {
			reason := "invalid_token"
			switch {
			case header == "":
				reason = "missing_header"
			case !errors.Is(err, common.ErrUnauthorized):
				reason = "store_error"
			}
			m.AuthFailure(reason)
			log.Debug("Request rejected", zap.String("reason", reason), zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, err)
			return
		}

		c.Set(common.IdentityKey, identity)
		c.Set(common.AccessTokenKey, common.ParseAuthorizationHeader(header))
		c.Request = c.Request.WithContext(shared.WithIdentity(c.Request.Context(), identity))

		log.Debug("User authenticated", zap.String("userID", identity.ID.String()))
		c.Next()
	}
}

// GetIdentityFromContext retrieves the identity set by AuthMiddleware.
func GetIdentityFromContext(c *gin.Context) *shared.Identity {
	val, exists := c.Get(common.IdentityKey)
	if !exists {
		return nil
	}
	identity, _ := val.(*shared.Identity)
	return identity
}

// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the optional prefix in front of the access token
	AuthorizationTypeBearer = "Bearer"
	// IdentityKey is the gin context key for the authenticated *shared.Identity
	IdentityKey = "identity"
	// AccessTokenKey is the gin context key for the raw access token of the request
	AccessTokenKey = "accessToken"
	// LoggerKey is the gin context key for a request-scoped *zap.Logger
	LoggerKey = "logger"
)

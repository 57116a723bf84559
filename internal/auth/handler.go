// File: internal/auth/handler.go
package auth

import (
	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	credentials shared.CredentialChecker
	logger      *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(credentials shared.CredentialChecker, logger *zap.Logger) *Handler {
	return &Handler{credentials: credentials, logger: logger.Named("auth_handler")}
}

// RegisterRoutes sets up the routes for session operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.login)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed body gets the same answer as wrong credentials.
		h.logger.Debug("Login: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrLoginFailed)
		return
	}

	session, err := h.credentials.CheckCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Login successful.", SessionResponse{
		ID:          session.ID,
		AccessToken: session.AccessToken,
		FirstName:   session.FirstName,
		LastName:    session.LastName,
		Email:       session.Email,
	})
}

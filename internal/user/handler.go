// File: internal/user/handler.go
package user

import (
	"fmt"

	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("user_handler"),
	}
}

// RegisterRoutes sets up the routes for user operations.
// It takes the auth middleware function as a parameter.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/users", h.register)
	router.GET("/users", authMW, h.listUsers)

	// The :id segment is kept for wire compatibility; the access token picks the user.
	router.PUT("/:id/user", authMW, h.updateProfile)
	router.GET("/:id/user", authMW, h.whoami)
}

func (h *Handler) register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("User registration: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrValidation.WithDetails("Request body must be a JSON object."))
		return
	}
	usr, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "User registered successfully.", RegisterResponse{
		ID:          usr.ID,
		AccessToken: usr.AccessToken,
		FirstName:   usr.FirstName,
		LastName:    usr.LastName,
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Users retrieved successfully.", users)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrValidation.WithDetails("Request body must be a JSON object."))
		return
	}
	updated, err := h.service.UpdateProfile(c.Request.Context(), common.GetAccessTokenFromContext(c), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, fmt.Sprintf("User details for %s updated.", updated.FirstName), ToUserResponse(updated))
}

func (h *Handler) whoami(c *gin.Context) {
	identity, ok := shared.IdentityFromContext(c.Request.Context())
	if !ok {
		h.logger.Error("Identity missing from context", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}
	common.RespondOK(c, fmt.Sprintf("Hello %s %s", identity.FirstName, identity.LastName), identity)
}

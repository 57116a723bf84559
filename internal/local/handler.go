// File: internal/local/handler.go
package local

import (
	"net/http"

	"torslanda_locals_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// imageField is the multipart field carrying the logo.
const imageField = "img_url"

// Handler struct holds dependencies for local handlers.
type Handler struct {
	service        Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates a new local handler.
func NewHandler(service Service, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes, logger: logger.Named("local_handler")}
}

// RegisterRoutes sets up the routes for local operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/locals", h.createLocal)
	router.GET("/locals", h.listLocals)
}

func (h *Handler) createLocal(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+(1<<20))
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.Warn("Create local: failed to parse multipart form", zap.Error(err))
		common.RespondWithError(c, common.ErrValidation.WithDetails("Request must be multipart/form-data within the upload size limit."))
		return
	}

	var req CreateLocalRequest
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		h.logger.Warn("Create local: invalid form data", zap.Error(err))
		common.RespondWithError(c, common.ErrValidation.WithDetails(err.Error()))
		return
	}

	var image ImageUpload
	if fileHeader, err := c.FormFile(imageField); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Could not read uploaded image."))
			return
		}
		defer f.Close()
		image = ImageUpload{Filename: fileHeader.Filename, Content: f}
	}

	created, err := h.service.CreateLocal(c.Request.Context(), req, image)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Local created successfully.", created)
}

func (h *Handler) listLocals(c *gin.Context) {
	locals, err := h.service.ListLocals(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Locals retrieved successfully.", locals)
}

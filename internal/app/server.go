// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"torslanda_locals_backend/internal/auth"
	"torslanda_locals_backend/internal/blobstore"
	"torslanda_locals_backend/internal/config"
	"torslanda_locals_backend/internal/jobs"
	"torslanda_locals_backend/internal/local"
	"torslanda_locals_backend/internal/middleware"
	"torslanda_locals_backend/internal/platform/metrics"
	"torslanda_locals_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bannerText = "Torslanda locals API"

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Jobs
	localsIndexJob *jobs.LocalsIndexJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
	guard *auth.Guard,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	localHandler *local.Handler,
	blobs blobstore.Store,
	localsIndexJob *jobs.LocalsIndexJob,
) *Server {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(m.Middleware())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(guard, m, logger)

	// --- Setup Routes ---
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, bannerText)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Torslanda locals API is healthy!"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	if fs, ok := blobs.(*blobstore.FilesystemStore); ok {
		router.Static("/images", fs.Root())
	}

	root := &router.RouterGroup
	userHandler.RegisterRoutes(root, authMW)
	authHandler.RegisterRoutes(root)
	localHandler.RegisterRoutes(root)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		localsIndexJob: localsIndexJob,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.localsIndexJob != nil {
		if err := s.localsIndexJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start locals index job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.localsIndexJob != nil {
		s.localsIndexJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

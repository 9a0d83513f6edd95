package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"storesync/internal/api/handlers"
	"storesync/internal/api/middleware"
	"storesync/internal/config"
	"storesync/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, syncer handlers.Syncer, tokens handlers.TokenStatus) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(tokens)
	syncHandler := handlers.NewSyncHandler(syncer, logger)

	// Routes
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		sync := v1.Group("/sync")
		{
			sync.POST("", syncHandler.Trigger)
			sync.GET("/status", syncHandler.Status)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}
}

// Start serves until Stop is called. It returns nil on a clean shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

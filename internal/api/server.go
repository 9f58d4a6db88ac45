package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/api/handler"
	"github.com/clearbridge-loan-origination/internal/api/service"
	"github.com/clearbridge-loan-origination/internal/config"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger // For structured logging
	httpServer *http.Server // Underlying HTTP server
	httpRouter *gin.Engine  // Gin router instance
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(
	log *slog.Logger,
	cfg *config.Config,
	authenticator identity.Authenticator,
	applicationService service.ApplicationService,
	lifecycleService service.LifecycleService,
	documentService service.DocumentService,
	restorationService service.RestorationService,
) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	applicationHandler := handler.NewApplicationHandler(log, applicationService)
	documentHandler := handler.NewDocumentHandler(log, documentService, cfg.Server.MaxUploadBytes)
	reviewHandler := handler.NewReviewHandler(log, applicationService, lifecycleService)
	restorationHandler := handler.NewRestorationHandler(log, restorationService, applicationService)

	setupRouter(log, httpRouter, authenticator, applicationHandler, documentHandler, reviewHandler, restorationHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}

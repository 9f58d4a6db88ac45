// Package api assembles the HTTP surface: routing, middleware, handlers and
// the services they delegate to.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clearbridge-loan-origination/internal/api/handler"
	"github.com/clearbridge-loan-origination/internal/api/middleware"
	"github.com/clearbridge-loan-origination/internal/domain/identity"
)

// setupRouter configures API routes and middleware for the application.
// Three role-scoped groups: applicants manage their own applications and
// documents, underwriters run the review queue, system admins run the
// restoration workflow.
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	authenticator identity.Authenticator,
	applicationHandler *handler.ApplicationHandler,
	documentHandler *handler.DocumentHandler,
	reviewHandler *handler.ReviewHandler,
	restorationHandler *handler.RestorationHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireAuth(logger, authenticator))
	{
		// Applicant operations
		applications := v1.Group("/applications")
		applications.Use(middleware.RequireRole(identity.RoleApplicant))
		{
			applications.POST("", applicationHandler.Submit)
			applications.GET("", applicationHandler.ListOwn)
			applications.GET("/:id", applicationHandler.GetByID)
			applications.DELETE("/:id", applicationHandler.Delete)
			applications.POST("/:id/documents", documentHandler.Upload)
			applications.GET("/:id/documents/:type", documentHandler.Download)
		}

		// Underwriter review operations
		review := v1.Group("/review")
		review.Use(middleware.RequireRole(identity.RoleUnderwriter, identity.RoleSystemAdmin))
		{
			review.GET("/applications", reviewHandler.List)
			review.GET("/applications/deleted", restorationHandler.ListDeletedApplications)
			review.GET("/applications/:id", reviewHandler.GetByID)
			review.DELETE("/applications/:id", applicationHandler.Delete)
			review.GET("/applications/:id/documents/:type", documentHandler.Download)
			review.PUT("/applications/:id/status", reviewHandler.UpdateStatus)
			review.POST("/applications/:id/request-documents", reviewHandler.RequestDocuments)
			review.POST("/applications/:id/restoration-requests", restorationHandler.Create)
			review.GET("/restoration-requests", restorationHandler.ListMine)
		}

		// System admin restoration operations
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireRole(identity.RoleSystemAdmin))
		{
			admin.GET("/restoration-requests", restorationHandler.List)
			admin.POST("/restoration-requests/:id/approve", restorationHandler.Approve)
			admin.POST("/restoration-requests/:id/reject", restorationHandler.Reject)
			admin.DELETE("/applications/:id", restorationHandler.PermanentDelete)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clearbridge-loan-origination/internal/api"
	"github.com/clearbridge-loan-origination/internal/api/service"
	"github.com/clearbridge-loan-origination/internal/config"
	"github.com/clearbridge-loan-origination/internal/data/mongo"
	"github.com/clearbridge-loan-origination/internal/data/postgres"
	"github.com/clearbridge-loan-origination/internal/domain/document"
	"github.com/clearbridge-loan-origination/internal/logger"
	"github.com/clearbridge-loan-origination/internal/platform/messaging/producers"
	"github.com/clearbridge-loan-origination/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for lifecycle events
	eventProducer, err := producers.NewLifecycleEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize lifecycle event producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(log, postgresDB)
	sessionRepo := postgres.NewSessionRepository(log, postgresDB)
	appRepo := mongo.NewApplicationRepository(log, mongoDB.Database())
	docRepo := mongo.NewDocumentRepository(log, mongoDB.Database())
	restRepo := mongo.NewRestorationRepository(log, mongoDB.Database())
	fileStore, err := mongo.NewGridFSFileStore(log, mongoDB.Database())
	if err != nil {
		log.Error("Failed to initialize GridFS file store", "error", err)
		os.Exit(1)
	}

	// Initialize services
	catalog := document.DefaultCatalog()
	authenticator := service.NewSessionAuthenticator(log, sessionRepo, userRepo)
	applicationService := service.NewApplicationService(log, appRepo, docRepo, catalog, eventProducer)
	lifecycleService := service.NewLifecycleService(log, appRepo, docRepo, catalog, cfg.Lifecycle, eventProducer)
	documentService := service.NewDocumentService(log, appRepo, docRepo, fileStore, catalog, eventProducer)
	restorationService := service.NewRestorationService(log, appRepo, restRepo, docRepo, fileStore, eventProducer)

	// Initialize REST server
	server := api.NewServer(log, cfg, authenticator, applicationService, lifecycleService, documentService, restorationService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}

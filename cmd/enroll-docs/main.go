package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"enroll-docs/internal/api"
	"enroll-docs/internal/api/handlers"
	"enroll-docs/internal/checklist"
	"enroll-docs/internal/repository"
	"enroll-docs/internal/service"
	"enroll-docs/internal/storage"
	"enroll-docs/pkg/auth"
	"enroll-docs/pkg/config"
	"enroll-docs/pkg/logger"
	"enroll-docs/pkg/postgres"

	"go.uber.org/zap"
)

// @title Enrollment Documents API
// @version 1.0
// @description Document checklist and upload service for student enrollment applications

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting enrollment documents service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Load track catalog
	catalog, err := checklist.LoadCatalog(cfg.Tracks.Path)
	if err != nil {
		appLogger.Fatal("Failed to load track catalog", zap.Error(err))
	}
	appLogger.Info("Track catalog loaded", zap.Int("tracks", len(catalog.Tracks())))

	// Initialize document storage
	fileStore, err := storage.NewFileStore(cfg.Storage.UploadDir, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize document storage", zap.Error(err))
	}

	// Initialize repositories
	applicantRepo := repository.NewApplicantRepository(db, appLogger)
	documentRepo := repository.NewDocumentRepository(db, appLogger)
	submissionRepo := repository.NewSubmissionRepository(db, appLogger)
	auditRepo := repository.NewAuditRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(applicantRepo, auditRepo, jwtManager, appLogger)
	subService := service.NewSubmissionService(catalog, applicantRepo, documentRepo, submissionRepo, auditRepo, fileStore, appLogger)
	adminService := service.NewAdminService(catalog, applicantRepo, documentRepo, submissionRepo, auditRepo, fileStore, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	trackHandler := handlers.NewTrackHandler(catalog, appLogger)
	subHandler := handlers.NewSubmissionHandler(subService, appLogger)
	adminHandler := handlers.NewAdminHandler(adminService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, trackHandler, subHandler, adminHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

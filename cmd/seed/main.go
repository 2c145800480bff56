package main

import (
	"context"
	"errors"
	"log"
	"time"

	"enroll-docs/internal/models"
	"enroll-docs/internal/repository"
	"enroll-docs/pkg/auth"
	"enroll-docs/pkg/config"
	"enroll-docs/pkg/logger"
	"enroll-docs/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Provisions the default admin account so a fresh deployment can review
// applicants without manual database edits. Idempotent: an existing admin
// username is left untouched.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	applicantRepo := repository.NewApplicantRepository(db, appLogger)

	username := cfg.Admin.Username
	if existing, err := applicantRepo.GetByUsername(ctx, username); err == nil {
		appLogger.Info("Admin account already exists, skipping",
			zap.String("username", existing.Username))
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		appLogger.Fatal("Failed to look up admin account", zap.Error(err))
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		appLogger.Fatal("Failed to hash admin password", zap.Error(err))
	}

	now := time.Now()
	admin := &models.Applicant{
		ID:        uuid.New(),
		Username:  username,
		Email:     cfg.Admin.Email,
		Password:  hashed,
		Role:      models.RoleAdmin,
		FirstName: "System",
		LastName:  "Administrator",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applicantRepo.Create(ctx, admin); err != nil {
		appLogger.Fatal("Failed to create admin account", zap.Error(err))
	}

	appLogger.Info("Admin account created", zap.String("username", username))
}

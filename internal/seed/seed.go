package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/manassa/platform/internal/app/models"
	appRepos "github.com/manassa/platform/internal/app/repositories"
	pkgAuth "github.com/manassa/platform/internal/pkg/auth"
)

const defaultAdminEmail = "admin@manassa.app"

// CreateDefaultData creates the default admin account if it doesn't
// exist. Idempotent; safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := pkgAuth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: hashedPassword,
		FullName: "Platform Administrator",
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}

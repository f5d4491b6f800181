package seed

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/HujaifaBytes/Student-Registration-website/internal/app/models"
	appRepos "github.com/HujaifaBytes/Student-Registration-website/internal/app/repositories"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/auth"
)

// CreateDefaultData seeds the initial admin credential when the admins table
// is empty. The password is read from ADMIN_PASSWORD; without it no account
// is created and the dashboard stays locked until one is provisioned.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	adminRepo := appRepos.NewAdminRepository(dbPool)

	count, err := adminRepo.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting admin accounts")
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("count", count).Msg("Admin accounts already present, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, no admin account seeded")
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing seed admin password")
		return err
	}

	admin := &appModels.Admin{
		Username:     username,
		Name:         "Administrator",
		PasswordHash: hash,
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating seed admin account")
		return err
	}

	lgr.Info().Str("username", username).Msg("Seed admin account created")
	return nil
}

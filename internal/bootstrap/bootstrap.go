package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/HujaifaBytes/Student-Registration-website/internal/app/controllers"
	appMigrations "github.com/HujaifaBytes/Student-Registration-website/internal/app/migrations"
	appRepos "github.com/HujaifaBytes/Student-Registration-website/internal/app/repositories"
	appRoutes "github.com/HujaifaBytes/Student-Registration-website/internal/app/routes"
	appServices "github.com/HujaifaBytes/Student-Registration-website/internal/app/services"
	"github.com/HujaifaBytes/Student-Registration-website/internal/config"
	"github.com/HujaifaBytes/Student-Registration-website/internal/db"
	appMiddleware "github.com/HujaifaBytes/Student-Registration-website/internal/middleware"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/assetstore"
	pkgAuth "github.com/HujaifaBytes/Student-Registration-website/internal/pkg/auth"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/helpers"
	"github.com/HujaifaBytes/Student-Registration-website/internal/pkg/logger"
	"github.com/HujaifaBytes/Student-Registration-website/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RegistrationService    appServices.RegistrationService
	AdminService           appServices.AdminService
	RegistrationController *appControllers.RegistrationController
	AdminController        *appControllers.AdminController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	SessionService         *pkgAuth.SessionService
	AssetStore             assetstore.Store
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the initial admin credential.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail startup; the dashboard stays locked
		// until an admin credential exists.
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupAssetStore builds the configured asset store driver.
func SetupAssetStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (assetstore.Store, error) {
	switch strings.ToLower(cfg.Assets.Driver) {
	case "", "local":
		baseURL := cfg.Assets.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.Server.Port + "/uploads"
		}
		store, err := assetstore.NewLocalStore(cfg.Assets.StoragePath, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local asset store: %w", err)
		}
		lgr.Info().Str("path", cfg.Assets.StoragePath).Msg("Using local asset store")
		return store, nil
	case "minio":
		store, err := assetstore.NewMinioStore(ctx, assetstore.MinioConfig{
			Endpoint:  cfg.Assets.Minio.Endpoint,
			AccessKey: cfg.Assets.Minio.AccessKey,
			SecretKey: cfg.Assets.Minio.SecretKey,
			Bucket:    cfg.Assets.Minio.Bucket,
			UseSSL:    cfg.Assets.Minio.UseSSL,
			BaseURL:   cfg.Assets.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize minio asset store: %w", err)
		}
		lgr.Info().Str("endpoint", cfg.Assets.Minio.Endpoint).Str("bucket", cfg.Assets.Minio.Bucket).Msg("Using minio asset store")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown asset store driver: %s", cfg.Assets.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	store, err := SetupAssetStore(context.Background(), cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize asset store")
		return nil, err
	}
	deps.AssetStore = store

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       helpers.ParseDuration(cfg.Session.TTL, 24*time.Hour),
		Issuer:    cfg.Session.Issuer,
	})

	issuer := appServices.NewSequenceIssuer(cfg.Registration.NumberPrefix, deps.Repos.StudentRepository)

	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.StudentRepository,
		deps.AssetStore,
		issuer,
		appServices.ImageDimensions{
			PhotoWidth:      cfg.Registration.PhotoWidth,
			PhotoHeight:     cfg.Registration.PhotoHeight,
			SignatureWidth:  cfg.Registration.SignatureWidth,
			SignatureHeight: cfg.Registration.SignatureHeight,
		},
		lgr,
	)

	deps.AdminService = appServices.NewAdminService(
		deps.Repos.StudentRepository,
		deps.Repos.AdminRepository,
		deps.AssetStore,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService, cfg.Session.CookieName)

	secureCookie := strings.ToLower(cfg.Server.Mode) == "production"
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService, lgr)
	deps.AdminController = appControllers.NewAdminController(
		deps.AdminService,
		deps.SessionService,
		cfg.Session.CookieName,
		secureCookie,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.RegistrationController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	// Uploaded images are served directly when the local driver is active.
	if strings.ToLower(cfg.Assets.Driver) != "minio" {
		router.Static("/uploads", cfg.Assets.StoragePath)
	}

	return router
}

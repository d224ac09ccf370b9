// Package bootstrap wires configuration, database, repositories, services
// and controllers together for the server
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

	appControllers "github.com/unilink/unilink/internal/app/controllers"
	appMigrations "github.com/unilink/unilink/internal/app/migrations"
	appRepos "github.com/unilink/unilink/internal/app/repositories"
	appRoutes "github.com/unilink/unilink/internal/app/routes"
	appServices "github.com/unilink/unilink/internal/app/services"
	"github.com/unilink/unilink/internal/config"
	"github.com/unilink/unilink/internal/db"
	appMiddleware "github.com/unilink/unilink/internal/middleware"
	pkgAuth "github.com/unilink/unilink/internal/pkg/auth"
	"github.com/unilink/unilink/internal/pkg/helpers"
	"github.com/unilink/unilink/internal/pkg/logger"
	"github.com/unilink/unilink/internal/pkg/websocket"
	"github.com/unilink/unilink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	ProfileService       appServices.ProfileService
	NotificationService  appServices.NotificationService
	ProjectService       appServices.ProjectService
	DiscussionService    appServices.DiscussionService
	ChatService          appServices.ChatService
	UniversityService    appServices.UniversityService
	AuthController       *appControllers.AuthController
	ProfileController    *appControllers.ProfileController
	ProjectController    *appControllers.ProjectController
	DiscussionController *appControllers.DiscussionController
	ChatController       *appControllers.ChatController
	UniversityController *appControllers.UniversityController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Hub                  *websocket.Hub
	WSHandler            *websocket.Handler
	Logger               zerolog.Logger
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
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

	// Seed reference data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to seed reference data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Websocket hub runs for the whole server lifetime
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	// Services
	deps.AuthService = appServices.NewAuthService(
		dbPool,
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.ReferenceRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		dbPool,
		deps.Repos.ProfileRepository,
		deps.Repos.UserRepository,
		deps.Repos.ReferenceRepository,
		deps.Repos.ProjectRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.RequestRepository,
		deps.Repos.DiscussionRepository,
		lgr,
	)
	deps.ProjectService = appServices.NewProjectService(
		dbPool,
		deps.Repos.ProjectRepository,
		deps.Repos.RequestRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.ReferenceRepository,
		lgr,
	)
	deps.DiscussionService = appServices.NewDiscussionService(
		deps.Repos.DiscussionRepository,
		deps.Repos.ProjectRepository,
		deps.Repos.ProfileRepository,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(
		dbPool,
		deps.Repos.ChatRepository,
		deps.Repos.ProfileRepository,
		deps.Hub,
		lgr,
	)
	deps.UniversityService = appServices.NewUniversityService(deps.Repos.ReferenceRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService, deps.NotificationService, lgr)
	deps.ProjectController = appControllers.NewProjectController(deps.ProjectService, lgr)
	deps.DiscussionController = appControllers.NewDiscussionController(deps.DiscussionService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.UniversityController = appControllers.NewUniversityController(deps.UniversityService, lgr)

	wsMessages := websocket.NewMessageHandler(deps.ChatService, lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, wsMessages, deps.Repos.ChatRepository, lgr)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.ProjectController,
		deps.DiscussionController,
		deps.ChatController,
		deps.UniversityController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}

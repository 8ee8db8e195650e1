package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/unitrack/internal/app/auth"
	appControllers "github.com/yigit/unitrack/internal/app/controllers"
	appMigrations "github.com/yigit/unitrack/internal/app/migrations"
	"github.com/yigit/unitrack/internal/app/models"
	appRepos "github.com/yigit/unitrack/internal/app/repositories"
	appRoutes "github.com/yigit/unitrack/internal/app/routes"
	appServices "github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/config"
	"github.com/yigit/unitrack/internal/db"
	appMiddleware "github.com/yigit/unitrack/internal/middleware"
	pkgAuth "github.com/yigit/unitrack/internal/pkg/auth"
	"github.com/yigit/unitrack/internal/pkg/logger"
	"github.com/yigit/unitrack/internal/pkg/validation"
	"github.com/yigit/unitrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Reader         appRepos.Reader
	AuthzService   *appAuth.AuthorizationService
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("UNITRACK_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "unitrack",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, appRepos.NewDepartmentRepository(database.Pool), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	policy, err := cfg.GradingPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to build grading policy: %w", err)
	}
	lgr.Info().Int("boundaries", len(policy.Boundaries())).Str("failingLetter", policy.FailingLetter()).
		Msg("Grading policy loaded")

	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database, db.NewTxOptions(cfg))
	deps.Reader = appRepos.NewPgReader(deps.Repos)
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Reader, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	verifiers := map[models.RoleType]pkgAuth.CredentialVerifier{
		models.RoleAdmin:      pkgAuth.NewAdminVerifier(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash),
		models.RoleInstructor: pkgAuth.NewAccountVerifier(models.RoleInstructor, deps.Repos.AccountRepository),
		models.RoleStudent:    pkgAuth.NewAccountVerifier(models.RoleStudent, deps.Repos.AccountRepository),
	}
	if cfg.Auth.AdminPasswordHash == "" {
		lgr.Warn().Msg("No administrator password hash configured; admin login disabled")
	}

	store := deps.Repos.Store
	authService := appServices.NewAuthService(verifiers, deps.JWTService, store, deps.Repos.AccountRepository, nil, lgr)
	catalogService := appServices.NewCatalogService(deps.Repos, lgr)
	lifecycleService := appServices.NewCourseLifecycleService(store, policy, lgr)
	assignmentService := appServices.NewAssignmentService(store, nil, lgr)
	enrollmentService := appServices.NewEnrollmentService(store, nil, lgr)
	gradingService := appServices.NewGradingService(store, policy, nil, lgr)
	reportService := appServices.NewReportService(deps.Reader, enrollmentService, lgr)

	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(authService, lgr),
		Course:     appControllers.NewCourseController(catalogService, lifecycleService, reportService),
		Assignment: appControllers.NewAssignmentController(assignmentService),
		Enrollment: appControllers.NewEnrollmentController(enrollmentService, reportService),
		Grade:      appControllers.NewGradeController(gradingService, deps.AuthzService),
		Department: appControllers.NewDepartmentController(catalogService),
		Student:    appControllers.NewStudentController(catalogService, reportService),
		Instructor: appControllers.NewInstructorController(catalogService),
		Health:     appControllers.NewHealthController(database),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinRules(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinical-study/config"
	deliveryHttp "clinical-study/internal/delivery/http"
	"clinical-study/internal/delivery/http/handler"
	"clinical-study/internal/delivery/http/middleware"
	"clinical-study/internal/infrastructure/cache"
	"clinical-study/internal/infrastructure/database"
	"clinical-study/internal/infrastructure/metrics"
	"clinical-study/internal/infrastructure/storage"
	"clinical-study/internal/repository"
	"clinical-study/internal/service"
	"clinical-study/internal/usecase"
	"clinical-study/pkg/jwt"
	"clinical-study/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	AuthUsecase   usecase.AuthUsecase
	ExportUsecase usecase.ExportUsecase
}

// LoadConfig reads the configuration and sets up the logger it asks for.
func LoadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := setupLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB, log, database.Up); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewConnection(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Infof("Database connected successfully (%s)", cfg.DB.Driver)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize export upload
	var uploader storage.Uploader
	if cfg.Export.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(ctx, cfg.Export)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to configure export bucket: %w", err)
		}
		uploader = s3Uploader
	}

	app.initialize(uploader)
	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) (*logrus.Logger, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(parsed)
	return logrus.StandardLogger(), nil
}

// initialize wires all layers and creates the HTTP server
func (app *App) initialize(uploader storage.Uploader) {
	cfg, db, log := app.Config, app.DB, app.Log

	// Initialize JWT service, tokens are only issued with a secret
	var jwtService *jwt.JWTService
	if cfg.JWT.Enabled() {
		jwtService = jwt.NewJWTService(cfg.JWT)
	}

	customValidator := validator.NewValidator()
	collector := metrics.New()
	sessions := service.NewSessionStore(app.RedisClient)

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	employeeRepo := repository.NewEmployeeRepository()
	questionnaireRepo := repository.NewQuestionnaireRepository()
	exportRepo := repository.NewExportRepository()

	// Initialize usecases
	app.AuthUsecase = usecase.NewAuthUsecase(db, log, employeeRepo, jwtService, sessions)
	app.ExportUsecase = usecase.NewExportUsecase(db, log, exportRepo, uploader)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, questionnaireRepo)
	questionnaireUsecase := usecase.NewQuestionnaireUsecase(db, log, customValidator, collector, patientRepo, employeeRepo, questionnaireRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(app.AuthUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase)
	questionnaireHandler := handler.NewQuestionnaireHandler(questionnaireUsecase)
	exportHandler := handler.NewExportHandler(app.ExportUsecase)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(app.AuthUsecase, cfg.Study)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		collector,
		authHandler,
		patientHandler,
		questionnaireHandler,
		exportHandler,
		healthHandler,
		authMiddleware,
		corsMiddleware,
	)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the server
// fails to start
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

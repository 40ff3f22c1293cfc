package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/config"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/database"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/database/migration"
	handlers "github.com/marcinwojcik-dev/capital-marketplace-backend/internal/http/handler"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/http/middleware"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/notifier"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/observability"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/otel"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/repository/postgres"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/scanner"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/service"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	isDev := os.Getenv("APP_ENV") != "production"
	logger, err := observability.InitLogger(isDev)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Tracing is optional; OTEL_SDK_DISABLED=true turns it off entirely.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Document bytes live either on the local filesystem or in an
	// S3-compatible bucket, chosen by configuration.
	var objStore storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		objStore, err = storage.NewMinIO(cfg.Storage.S3)
	default:
		objStore, err = storage.NewLocal(cfg.Storage.LocalDir)
	}
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	scanClient := scanner.NewClient(cfg.Scanner.BaseURL, cfg.Scanner.Timeout)
	notify := notifier.NewPostgres(db)

	docRepo := postgres.NewDocumentPostgres(db)
	companyRepo := postgres.NewCompanyPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, scanClient, notify, logger)

	app := fiber.New(fiber.Config{
		// Uploads arrive as one multipart stream and are consumed part
		// by part instead of being buffered whole.
		StreamRequestBody: true,
		BodyLimit:         int(cfg.Upload.MaxFileSize)*cfg.Upload.MaxFilesPerUpload + 1<<20,
		ErrorHandler:      handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	if os.Getenv("OTEL_SDK_DISABLED") == "true" {
		app.Use(middleware.Noop())
	} else {
		app.Use(otelfiber.Middleware())
	}

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, db, docSvc, companyRepo, cfg)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr), zap.String("storage_backend", cfg.Storage.Backend))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

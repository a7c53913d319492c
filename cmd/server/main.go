package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/routes"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/models"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/config"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/pkg/logging"
)

// @title MF Fleet Administration API
// @version 1.0
// @description Fleet, client and billing administration API

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logging.Setup()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		slog.Error("failed to auto migrate", "error", err)
		os.Exit(1)
	}
	slog.Info("database migration completed")

	// Seed the super admin account
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		slog.Warn("seeding failed", "error", err)
	}

	// Start the periodic workspace backup job
	snapshotService := services.NewSnapshotService(
		repositories.NewWorkspaceRepository(db),
		repositories.NewSnapshotRepository(db),
		cfg.Snapshot.Schedule,
		cfg.Snapshot.Keep,
	)
	if err := snapshotService.Start(); err != nil {
		slog.Error("failed to start snapshot job", "error", err)
		os.Exit(1)
	}
	defer snapshotService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MF Fleet Administration API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	slog.Info("server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	slog.Info("server stopped gracefully")
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/handlers"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/config"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/policy"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	wsRepo := repositories.NewWorkspaceRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, wsRepo, cfg)
	userService := services.NewUserService(userRepo, wsRepo)
	wsService := services.NewWorkspaceService(wsRepo)
	exportService := services.NewExportService(wsService)
	prefService := services.NewPreferenceService(settingRepo)
	dashboardService := services.NewDashboardService(wsRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	vehicleHandler := handlers.NewVehicleHandler(wsService)
	clientHandler := handlers.NewClientHandler(wsService)
	billHandler := handlers.NewBillHandler(wsService, exportService)
	folderHandler := handlers.NewFolderHandler(wsService)
	prefHandler := handlers.NewPreferenceHandler(prefService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, authHandler, userHandler, vehicleHandler,
		clientHandler, billHandler, folderHandler, prefHandler,
		dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	vehicleHandler *handlers.VehicleHandler,
	clientHandler *handlers.ClientHandler,
	billHandler *handlers.BillHandler,
	folderHandler *handlers.FolderHandler,
	prefHandler *handlers.PreferenceHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Dashboard routes. Aggregates tolerate short client-side staleness.
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.RequireView(policy.ViewDashboard))
	dashboardRoutes.Use(middleware.PrivateCacheHeaders(30 * time.Second))
	dashboardRoutes.Get("/", dashboardHandler.Stats)

	// Fleet routes. Billing officers never reach this section.
	vehicleRoutes := router.Group("/vehicles")
	vehicleRoutes.Use(middleware.AuthMiddleware(cfg))
	vehicleRoutes.Use(middleware.RequireView(policy.ViewFleet))
	setupVehicleRoutes(vehicleRoutes, vehicleHandler)

	// Client routes
	clientRoutes := router.Group("/clients")
	clientRoutes.Use(middleware.AuthMiddleware(cfg))
	clientRoutes.Use(middleware.RequireView(policy.ViewClients))
	setupClientRoutes(clientRoutes, clientHandler)

	// Bill routes
	billRoutes := router.Group("/bills")
	billRoutes.Use(middleware.AuthMiddleware(cfg))
	billRoutes.Use(middleware.RequireView(policy.ViewBills))
	setupBillRoutes(billRoutes, billHandler)

	// Folder routes. Per-kind mutation rules apply inside the service.
	folderRoutes := router.Group("/folders")
	folderRoutes.Use(middleware.AuthMiddleware(cfg))
	setupFolderRoutes(folderRoutes, folderHandler)

	// Preference routes (Authenticated users)
	prefRoutes := router.Group("/preferences")
	prefRoutes.Use(middleware.AuthMiddleware(cfg))
	prefRoutes.Use(middleware.NoCacheHeaders())
	prefRoutes.Get("/", prefHandler.Get)
	prefRoutes.Put("/", prefHandler.Set)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:username", handler.Update)
	router.Delete("/:username", handler.Delete)
}

// setupVehicleRoutes configures fleet routes
func setupVehicleRoutes(router fiber.Router, handler *handlers.VehicleHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Patch("/:id/move", handler.Move)
}

// setupClientRoutes configures client book routes
func setupClientRoutes(router fiber.Router, handler *handlers.ClientHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Patch("/:id/move", handler.Move)
}

// setupBillRoutes configures billing routes
func setupBillRoutes(router fiber.Router, handler *handlers.BillHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Get("/:id/print", handler.Print)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Patch("/:id/move", handler.Move)
}

// setupFolderRoutes configures folder routes
func setupFolderRoutes(router fiber.Router, handler *handlers.FolderHandler) {
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Rename)
	router.Delete("/:id", handler.Delete)
}

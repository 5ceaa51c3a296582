package routes

import (
	"time"

	"praxiszeit/internal/adapters/http/handlers"
	"praxiszeit/internal/adapters/http/middleware"
	"praxiszeit/internal/adapters/persistence/repositories"
	"praxiszeit/internal/config"
	"praxiszeit/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the services
// that need a managed lifecycle
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	practiceRepo := repositories.NewPracticeRepository(db)
	blockRepo := repositories.NewTimeBlockRepository(db)
	correctionRepo := repositories.NewCorrectionRepository(db)
	policyRepo := repositories.NewPolicyRepository(db)
	plausRepo := repositories.NewPlausibilityRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, practiceRepo, cfg)
	userService := services.NewUserService(userRepo)
	timeClockService := services.NewTimeClockService(blockRepo, policyRepo, userRepo)
	reportService := services.NewReportService(blockRepo, userRepo)
	exportService := services.NewExportService(reportService)
	correctionService := services.NewCorrectionService(correctionRepo, blockRepo, plausRepo, userRepo)
	policyService := services.NewPolicyService(policyRepo, blockRepo, userRepo)
	plausService := services.NewPlausibilityService(plausRepo, blockRepo, userRepo, practiceRepo)
	cronService := services.NewCronService(plausService, refreshTokenRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	timeClockHandler := handlers.NewTimeClockHandler(timeClockService)
	reportHandler := handlers.NewReportHandler(reportService, exportService)
	correctionHandler := handlers.NewCorrectionHandler(correctionService)
	policyHandler := handlers.NewPolicyHandler(policyService)
	plausHandler := handlers.NewPlausibilityHandler(plausService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Profile routes (Authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Time tracking routes (Authenticated users)
	trackingRoutes := apiV1.Group("/time-tracking")
	trackingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupTimeTrackingRoutes(trackingRoutes, timeClockHandler, reportHandler)

	// Correction request routes (Authenticated users; review for managers)
	correctionRoutes := apiV1.Group("/time-correction-requests")
	correctionRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCorrectionRoutes(correctionRoutes, correctionHandler)

	// Plausibility issue routes
	plausRoutes := apiV1.Group("/plausibility-issues")
	plausRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPlausibilityRoutes(plausRoutes, plausHandler)

	// Homeoffice policy routes (own view)
	policyRoutes := apiV1.Group("/homeoffice-policy")
	policyRoutes.Use(middleware.AuthMiddleware(cfg))
	policyRoutes.Get("/", middleware.PrivateCacheHeaders(5*time.Minute), policyHandler.GetOwn)
	policyRoutes.Get("/check", policyHandler.CheckOwn)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, policyHandler, plausHandler)

	return cronService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
	router.Put("/:id/role", handler.SetUserRole)
}

// setupProfileRoutes configures profile routes (Authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Put("/password", middleware.StrictRateLimiter(), handler.ChangePassword)
}

// setupTimeTrackingRoutes configures the punch-clock and report routes
func setupTimeTrackingRoutes(router fiber.Router, clock *handlers.TimeClockHandler, report *handlers.ReportHandler) {
	// Live status and stamping
	router.Get("/status", middleware.NoCacheHeaders(), clock.GetStatus)
	router.Post("/clock-in", clock.ClockIn)
	router.Post("/clock-out", clock.ClockOut)
	router.Post("/break-start", clock.BreakStart)
	router.Post("/break-end", clock.BreakEnd)

	// Recorded blocks
	router.Get("/blocks", clock.GetBlocks)
	router.Get("/blocks/:id/stamps", clock.GetBlockStamps)

	// Reports
	router.Get("/report", middleware.PrivateCacheHeaders(time.Minute), report.GetMonthlyReport)
	router.Get("/export", report.ExportMonthlyReport)

	// Team live view (Manager/Admin)
	router.Get("/team", middleware.ManagerOrAdmin(), report.GetTeamStatus)
}

// setupCorrectionRoutes configures correction request routes
func setupCorrectionRoutes(router fiber.Router, handler *handlers.CorrectionHandler) {
	router.Post("/", handler.Submit)
	router.Get("/", handler.ListMine)

	// Review (Manager/Admin)
	router.Get("/review", middleware.ManagerOrAdmin(), handler.ListForReview)
	router.Put("/:id/review", middleware.ManagerOrAdmin(), handler.Review)
}

// setupPlausibilityRoutes configures plausibility issue routes
func setupPlausibilityRoutes(router fiber.Router, handler *handlers.PlausibilityHandler) {
	router.Get("/", handler.ListMine)

	// Practice-wide view and resolution (Manager/Admin)
	router.Get("/practice", middleware.ManagerOrAdmin(), handler.ListForPractice)
	router.Post("/:id/resolve", middleware.ManagerOrAdmin(), handler.Resolve)
}

// setupAdminRoutes configures admin-only routes
func setupAdminRoutes(router fiber.Router, policy *handlers.PolicyHandler, plaus *handlers.PlausibilityHandler) {
	// Homeoffice policy management
	router.Get("/homeoffice-policies", policy.List)
	router.Put("/homeoffice-policies", policy.Upsert)
	router.Delete("/homeoffice-policies/:userId", policy.Delete)

	// Manual plausibility scan
	router.Post("/plausibility-scan", plaus.Scan)
}

package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"lifehub-service/internal/documentview"
	"lifehub-service/internal/handler"
	"lifehub-service/internal/middleware"
	"lifehub-service/internal/moduleconfig"
	"lifehub-service/internal/record"
	"lifehub-service/internal/stats"
	"lifehub-service/pkg/config"
	"lifehub-service/pkg/database"
	"lifehub-service/pkg/jwtutil"
	"lifehub-service/pkg/logger"
	"lifehub-service/pkg/oauth"
	"lifehub-service/prometheus"
)

const version = "1.0.0"

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting lifehub service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Register the built-in module configurations
	registry := moduleconfig.NewRegistry()
	moduleconfig.RegisterBuiltins(registry)
	prometheus.SetServiceInfo(cfg.Metrics.Prefix, version)
	prometheus.SetRegisteredModules(registry.Count())
	log.Info("Module registry initialized", zap.Int("modules", registry.Count()))

	// Bind one record service per module over the shared records table
	resolver := record.NewResolver()
	for _, mt := range registry.ModuleTypes() {
		moduleCfg, _ := registry.Get(mt)
		resolver.Register(moduleCfg.Services.RecordService, record.NewTableService(database.GetDB(), mt))
	}
	log.Info("Record services registered", zap.Strings("services", resolver.Names()))

	// Document-view and stats services
	viewService := documentview.NewService(registry, documentview.NewGormStore(database.GetDB()), resolver)
	statsService := stats.NewService(registry, viewService)

	// Wire handlers
	handler.InitAuthHandler(jwtUtil)
	handler.InitOAuthHandler(oauth.Clients(cfg.OAuth, log), jwtUtil, cfg.OAuth.StateTTL)
	handler.InitDocumentViewHandler(viewService)
	handler.InitStatsHandler(statsService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))

	// Authentication routes - these don't belong under /api since they're for getting access to the API
	auth := e.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/refresh", handler.RefreshToken)
	auth.POST("/forgot-password", handler.ForgotPassword)
	auth.POST("/reset-password", handler.ResetPassword)
	auth.GET("/oauth/:provider", handler.OAuthRedirect)
	auth.GET("/oauth/:provider/callback", handler.OAuthCallback)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(jwtUtil))

	api.GET("/profile", handler.GetProfile)
	api.PUT("/profile", handler.UpdateProfile)
	api.POST("/change-password", handler.ChangePassword)

	statsGroup := api.Group("/stats")
	statsGroup.GET("/dashboard", handler.GetDashboard)
	statsGroup.GET("/habits/streaks", handler.GetHabitStreaks)
	statsGroup.GET("/moods/trend", handler.GetMoodTrend)
	statsGroup.GET("/content/pipeline", handler.GetContentPipeline)

	// Document-view routes - the per-module document system
	dv := e.Group("/document-view/:type")
	dv.Use(middleware.JWTAuthMiddleware(jwtUtil))

	dv.GET("/config", handler.GetModuleConfig)
	dv.GET("/frozen-config", handler.GetFrozenConfig)

	dv.GET("/views", handler.ListViews)
	dv.POST("/views", handler.CreateView)
	dv.GET("/views/default", handler.GetDefaultView)
	dv.GET("/views/:viewId", handler.GetView)
	dv.PUT("/views/:viewId", handler.UpdateView)
	dv.DELETE("/views/:viewId", handler.DeleteView)
	dv.POST("/views/:viewId/duplicate", handler.DuplicateView)

	dv.GET("/properties", handler.ListProperties)
	dv.POST("/properties", handler.AddProperty)
	dv.PUT("/properties/:propertyId", handler.UpdateProperty)
	dv.DELETE("/properties/:propertyId", handler.DeleteProperty)

	dv.GET("/records", handler.ListRecords)
	dv.POST("/records", handler.CreateRecord)
	dv.PUT("/records/:recordId", handler.UpdateRecord)
	dv.DELETE("/records/:recordId", handler.DeleteRecord)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

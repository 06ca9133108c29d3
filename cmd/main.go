package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/config"
	"admin-bff-service/internal/events"
	"admin-bff-service/internal/handlers"
	"admin-bff-service/internal/middleware"
	"admin-bff-service/internal/repository"
	"admin-bff-service/internal/uploader"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/rbac"
	"github.com/Tesseract-Nexus/go-shared/secrets"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

// @title Admin BFF API
// @version 1.0.0
// @description Backend-for-frontend for the admin catalog and storefront settings screens

// @contact.name Admin BFF Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8095
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client for the session store
	var redisClient *redis.Client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (session store falls back to in-memory)", err)
	} else {
		// Set Redis password from GCP Secret Manager
		redisOpts.Password = secrets.GetRedisPassword()
		redisClient = redis.NewClient(redisOpts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v (session store falls back to in-memory)", err)
			redisClient = nil
		} else {
			log.Println("✓ Redis connected successfully")
		}
		cancel()
	}

	// Initialize repository
	sessionsRepo := repository.NewSessionsRepository(redisClient)

	// Initialize event publisher for the admin audit trail only if NATS_URL is set
	var eventsPublisher *events.Publisher
	natsURL := os.Getenv("NATS_URL")
	if natsURL != "" {
		var err error
		eventsPublisher, err = events.NewPublisher(logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer func() {
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}
	}()

	// Initialize the upload orchestrator over the media client and session store
	mediaClient := clients.NewMediaClient()
	orchestrator := uploader.New(mediaClient, sessionsRepo, logger)

	// Initialize handlers with event publisher (may be nil if NATS not configured)
	productsHandler := handlers.NewProductsHandler(cfg, sessionsRepo, eventsPublisher)
	sessionsHandler := handlers.NewSessionsHandler(sessionsRepo, eventsPublisher)
	imagesHandler := handlers.NewImagesHandler(cfg, sessionsRepo, orchestrator, mediaClient, eventsPublisher)
	settingsHandler := handlers.NewSettingsHandler(sessionsRepo, logger)
	translateHandler := handlers.NewTranslateHandler(logger)
	exportHandler := handlers.NewExportHandler(cfg)
	healthHandler := handlers.NewHealthHandler(redisClient)

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	if cfg.Environment == "production" {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("admin-bff-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("admin-bff-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	// Initialize Prometheus metrics
	metrics := gosharedmw.InitGlobalMetrics("tesseract", "admin_bff_service")
	log.Println("✓ Prometheus metrics initialized")

	// Initialize RBAC middleware
	staffServiceURL := os.Getenv("STAFF_SERVICE_URL")
	if staffServiceURL == "" {
		staffServiceURL = "http://staff-service:8080"
	}
	rbacMw := rbac.NewMiddlewareWithURL(staffServiceURL, nil)
	log.Println("✓ RBAC middleware initialized")

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add observability middleware (metrics + tracing)
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("admin-bff-service"))
	router.Use(gosharedmw.CompressionMiddleware())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/metrics", gosharedmw.Handler())

	// Protected API routes
	api := router.Group("/api/v1")

	// Initialize Istio auth middleware for Keycloak JWT validation
	// During migration, AllowLegacyHeaders enables fallback to X-* headers from auth-bff
	istioAuthLogger := logrus.NewEntry(logger).WithField("component", "istio_auth")
	istioAuth := gosharedmw.IstioAuth(gosharedmw.IstioAuthConfig{
		RequireAuth:        true,
		AllowLegacyHeaders: true, // Allow X-User-ID, X-Tenant-ID during migration
		Logger:             istioAuthLogger,
	})

	// Authentication middleware
	// In development: use DevelopmentAuthMiddleware for local testing
	// In production: use IstioAuth which reads x-jwt-claim-* headers from Istio
	//                or falls back to X-* headers from auth-bff during migration
	if cfg.Environment == "development" {
		api.Use(middleware.DevelopmentAuthMiddleware())
		api.Use(middleware.TenantMiddleware())
	} else {
		api.Use(istioAuth)
		api.Use(middleware.TenantMiddleware())
		// Vendor isolation for marketplace mode
		api.Use(gosharedmw.VendorScopeFilter())
	}

	// API routes
	v1 := api.Group("")
	{
		products := v1.Group("/products")
		{
			// Read operations - require products:read permission
			products.GET("", rbacMw.RequirePermission(rbac.PermissionProductsRead), productsHandler.GetProducts)
			products.GET("/:id", rbacMw.RequirePermission(rbac.PermissionProductsRead), productsHandler.GetProduct)

			// Create / update proxies - require products permissions
			products.POST("", rbacMw.RequirePermission(rbac.PermissionProductsCreate), productsHandler.CreateProduct)
			products.PUT("/:id", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), productsHandler.UpdateProduct)
			products.PUT("/:id/status", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), productsHandler.UpdateProductStatus)
			products.POST("/bulk/status", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), productsHandler.BulkUpdateProductStatus)

			// Edit sessions - the server-side draft for the product form
			products.POST("/session", rbacMw.RequirePermission(rbac.PermissionProductsCreate), sessionsHandler.OpenDraftSession)
			products.POST("/:id/session", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), sessionsHandler.OpenProductSession)
			products.GET("/:id/session", rbacMw.RequirePermission(rbac.PermissionProductsRead), sessionsHandler.GetSession)
			products.PUT("/:id/session/fields", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), sessionsHandler.SetField)
			products.POST("/:id/session/validate", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), sessionsHandler.Validate)
			products.POST("/:id/session/commit", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), sessionsHandler.Commit)
			products.DELETE("/:id/session", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), sessionsHandler.Discard)

			// Image management - uploads and the session image list
			products.POST("/:id/images", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), imagesHandler.UploadImages)
			products.DELETE("/:id/images/:imageId", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), imagesHandler.RemoveImage)
			products.POST("/:id/images/:imageId/move", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), imagesHandler.MoveImage)
			products.POST("/:id/images/:imageId/primary", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), imagesHandler.TogglePrimary)
			products.PUT("/:id/images/:imageId/primary", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), imagesHandler.SetPrimary)

			// Export - requires export permission
			products.POST("/export", rbacMw.RequirePermission(rbac.PermissionProductsExport), exportHandler.ExportProducts)
		}

		// Upload batch tracking records
		batches := v1.Group("/upload-batches")
		{
			batches.GET("/:batchId", rbacMw.RequirePermission(rbac.PermissionProductsRead), imagesHandler.GetBatch)
			batches.DELETE("/:batchId", rbacMw.RequirePermission(rbac.PermissionProductsUpdate), imagesHandler.DismissBatch)
		}

		// Category management
		categories := v1.Group("/categories")
		{
			categories.GET("", rbacMw.RequirePermission(rbac.PermissionCategoriesRead), productsHandler.GetCategories)
			categories.GET("/options", rbacMw.RequirePermission(rbac.PermissionCategoriesRead), productsHandler.GetCategoryOptions)
			categories.POST("", rbacMw.RequirePermission(rbac.PermissionCategoriesCreate), productsHandler.CreateCategory)
		}

		// Storefront settings and branding - scoped by X-Storefront-ID
		storefrontGroup := v1.Group("/storefront")
		storefrontGroup.Use(middleware.StorefrontMiddleware())
		{
			storefrontGroup.GET("/settings", rbacMw.RequirePermission(rbac.PermissionVendorsRead), settingsHandler.GetSettings)
			storefrontGroup.POST("/settings", rbacMw.RequirePermission(rbac.PermissionVendorsManage), settingsHandler.SaveSettings)
			storefrontGroup.PATCH("/settings", rbacMw.RequirePermission(rbac.PermissionVendorsManage), settingsHandler.PatchSettings)
			storefrontGroup.DELETE("/settings", rbacMw.RequirePermission(rbac.PermissionVendorsManage), settingsHandler.DeleteSettings)
			storefrontGroup.GET("/branding", rbacMw.RequirePermission(rbac.PermissionVendorsRead), settingsHandler.GetBranding)
			storefrontGroup.PATCH("/branding", rbacMw.RequirePermission(rbac.PermissionVendorsManage), settingsHandler.PatchBranding)
		}

		// Translation passthrough
		v1.Any("/translations/*path", rbacMw.RequirePermission(rbac.PermissionProductsRead), translateHandler.Proxy)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Admin BFF service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down admin-bff-service...")

	// Shutdown tracer provider
	if tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		} else {
			log.Println("✓ Tracer provider shut down")
		}
	}

	log.Println("Admin BFF service stopped")
}

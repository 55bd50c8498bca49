package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/worksuite/backend/internal/application/identity"
	taxonomyapp "github.com/worksuite/backend/internal/application/taxonomy"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"github.com/worksuite/backend/internal/infrastructure/cache"
	"github.com/worksuite/backend/internal/infrastructure/config"
	"github.com/worksuite/backend/internal/infrastructure/event"
	"github.com/worksuite/backend/internal/infrastructure/logger"
	"github.com/worksuite/backend/internal/infrastructure/persistence"
	"github.com/worksuite/backend/internal/interfaces/http/handler"
	"github.com/worksuite/backend/internal/interfaces/http/middleware"
	"github.com/worksuite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Worksuite Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	taxonomyRepo := persistence.NewGormTaxonomyItemRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log,
		event.WithAsyncDispatch(cfg.Event.BufferSize, cfg.Event.Workers),
	)

	// Resolution cache (in-memory, optionally distributed via Redis Pub/Sub)
	cacheFactory := cache.NewResolutionCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log))
	resolutionCache := cacheFactory.CreateCache()

	// Initialize application services
	registry := taxonomy.DefaultRegistry()
	taxonomyService := taxonomyapp.NewService(taxonomyRepo, resolutionCache, eventBus, log)
	propagator := taxonomyapp.NewPropagator(taxonomyRepo, registry, resolutionCache, eventBus, log)
	tenantService := identityapp.NewTenantService(tenantRepo, eventBus, log)
	orgService := identityapp.NewOrganizationService(orgRepo, tenantRepo, eventBus, log)

	// Register event handlers for cross-context integration
	// Tenant/organization creation -> taxonomy propagation
	provisioningHandler := taxonomyapp.NewProvisioningHandler(propagator, log)
	eventBus.Subscribe(provisioningHandler)

	log.Info("Event handlers registered",
		zap.Strings("provisioning_events", provisioningHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Seed global default classifications, idempotent across restarts
	seedReport, err := propagator.SeedGlobalDefaults(context.Background())
	if err != nil {
		log.Fatal("Failed to seed global defaults", zap.Error(err))
	}
	log.Info("Global defaults seeded",
		zap.Int("created", seedReport.Created),
		zap.Int("skipped", seedReport.Skipped),
	)

	// Initialize HTTP handlers
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService, propagator)
	tenantHandler := handler.NewTenantHandler(tenantService)
	orgHandler := handler.NewOrganizationHandler(orgService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Taxonomy domain (statuses, priorities, sizes)
	taxonomyRoutes := router.NewDomainGroup("taxonomy", "/taxonomy")
	taxonomyRoutes.POST("/propagate", taxonomyHandler.Propagate)
	taxonomyRoutes.GET("/:kind", taxonomyHandler.Resolve)
	taxonomyRoutes.POST("/:kind", taxonomyHandler.Create)
	taxonomyRoutes.PUT("/:kind/reorder", taxonomyHandler.Reorder)
	taxonomyRoutes.DELETE("/:kind/:id", taxonomyHandler.Delete)

	// Identity domain (tenants, organizations)
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.POST("/tenants", tenantHandler.Create)
	identityRoutes.GET("/tenants", tenantHandler.List)
	identityRoutes.GET("/tenants/:id", tenantHandler.GetByID)
	identityRoutes.GET("/tenants/code/:code", tenantHandler.GetByCode)
	identityRoutes.POST("/organizations", orgHandler.Create)
	identityRoutes.GET("/organizations", orgHandler.ListByTenant)
	identityRoutes.GET("/organizations/:id", orgHandler.GetByID)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(taxonomyRoutes).
		Register(identityRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		payload := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			payload["pool"] = gin.H{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			}
		}
		c.JSON(http.StatusOK, payload)
	}
}

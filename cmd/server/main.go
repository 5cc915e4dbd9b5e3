package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/catalog"
	channelapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/channel"
	identityapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/identity"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/auth"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/cache"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/config"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/logger"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/persistence"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/telemetry"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/interfaces/http/handler"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/interfaces/http/middleware"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//	@title			Clic Menu Console API
//	@version		1.0
//	@description	Management console API for multi-restaurant menu, variant and channel price administration

//	@contact.name	API Support
//	@contact.url	https://github.com/DesarrolladorTAE/Clic-Menu-sub000

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	log.Info("Starting Clic Menu Console",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
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

	// Register database query tracing
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	branchChannelRepo := persistence.NewGormBranchChannelRepository(db.DB)
	priceRepo := persistence.NewGormPriceRepository(db.DB)
	restaurantRepo := persistence.NewGormRestaurantRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)

	// Price resolution cache: Redis when reachable, in-memory otherwise
	var resolutionCache channelapp.ResolutionCache
	redisCache, err := cache.NewRedisResolutionCache(cfg.Redis, cache.WithResolutionTTL(cfg.Catalog.ResolutionCacheTTL))
	if err != nil {
		log.Warn("Redis unavailable, using in-memory resolution cache", zap.Error(err))
		resolutionCache = cache.NewInMemoryResolutionCache(cache.WithInMemoryResolutionTTL(cfg.Catalog.ResolutionCacheTTL))
	} else {
		resolutionCache = redisCache
		log.Info("Redis resolution cache connected",
			zap.String("host", cfg.Redis.Host),
			zap.Duration("ttl", cfg.Catalog.ResolutionCacheTTL),
		)
	}

	// Token blacklist follows the same fallback
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	// Initialize application services
	attributeService := catalogapp.NewAttributeService(attributeRepo, resolutionCache)
	productService := catalogapp.NewProductService(productRepo)
	variantService := catalogapp.NewVariantService(productRepo, attributeRepo, variantRepo, priceRepo, resolutionCache,
		catalogapp.WithGenerationLimits(cfg.Catalog.MaxCombinations, cfg.Catalog.PreviewLimit))
	branchChannelService := channelapp.NewBranchChannelService(branchChannelRepo, resolutionCache)
	priceService := channelapp.NewPriceService(productRepo, variantRepo, branchChannelRepo, priceRepo, resolutionCache, log)

	// Identity services (auth, staff assignments)
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenIssuer := auth.NewTokenIssuerAdapter(jwtService)
	authService := identityapp.NewAuthService(restaurantRepo, userRepo, tokenIssuer, log)
	assignmentService := identityapp.NewAssignmentService(assignmentRepo, roleRepo, userRepo, branchRepo)

	// Initialize HTTP handlers
	attributeHandler := handler.NewAttributeHandler(attributeService)
	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantService)
	branchChannelHandler := handler.NewBranchChannelHandler(branchChannelService)
	channelPriceHandler := handler.NewChannelPriceHandler(priceService)
	authHandler := handler.NewAuthHandler(authService, jwtService, tokenBlacklist)
	assignmentHandler := handler.NewStaffAssignmentHandler(assignmentService)

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
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.TracingAttributeInjector())
	}
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

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Resolve the tenant after authentication. Production refuses requests
	// without a tenant; other environments fall back to a fixed development
	// restaurant so local requests work before login is set up.
	restaurantConfig := middleware.RestaurantMiddlewareConfig{
		SkipPaths: jwtConfig.SkipPaths,
		Required:  cfg.App.Env == "production",
		Logger:    log,
	}
	if cfg.App.Env != "production" {
		devRestaurantID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
		restaurantConfig.FallbackID = &devRestaurantID
	}
	r.Use(middleware.RestaurantMiddlewareWithConfig(restaurantConfig))

	// Stricter rate limit for credential endpoints (if enabled)
	var authRateLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		authRateLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	// Identity domain - public auth routes
	authRoutes := router.NewDomainGroup("/auth")
	if authRateLimiter != nil {
		authRoutes.Use(middleware.AuthRateLimit(authRateLimiter))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)

	// Catalog domain (attributes, products, variants, prices)
	catalogRoutes := router.NewDomainGroup("/catalog")
	catalogRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "catalog service ready"})
	})

	attributeRoutes := catalogRoutes.Group("/attributes")
	attributeRoutes.POST("", attributeHandler.Create)
	attributeRoutes.GET("", attributeHandler.List)
	attributeRoutes.GET("/:id", attributeHandler.GetByID)
	attributeRoutes.PUT("/:id", attributeHandler.Update)
	attributeRoutes.PUT("/:id/active", attributeHandler.SetActive)
	attributeRoutes.DELETE("/:id", attributeHandler.Delete)
	attributeRoutes.GET("/:id/values", attributeHandler.ListValues)
	attributeRoutes.POST("/:id/values", attributeHandler.AddValue)
	attributeRoutes.PUT("/:id/values/:value_id", attributeHandler.UpdateValue)
	attributeRoutes.DELETE("/:id/values/:value_id", attributeHandler.DeleteValue)
	attributeRoutes.POST("/:id/values/swap-order", attributeHandler.SwapValueOrder)
	attributeRoutes.PUT("/:id/values/:value_id/active", attributeHandler.SetValueActive)

	productRoutes := catalogRoutes.Group("/products")
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.POST("/:id/variants/preview", variantHandler.Preview)
	productRoutes.POST("/:id/variants/generate", variantHandler.Generate)
	productRoutes.GET("/:id/variants", variantHandler.ListByProduct)
	productRoutes.GET("/:id/channel-prices", channelPriceHandler.Resolve)
	productRoutes.PUT("/:id/channel-prices", channelPriceHandler.SetProductPrices)

	variantRoutes := catalogRoutes.Group("/variants")
	variantRoutes.GET("/:id", variantHandler.GetByID)
	variantRoutes.PATCH("/:id/enabled", variantHandler.SetEnabled)
	variantRoutes.PATCH("/:id/default", variantHandler.SetDefault)
	variantRoutes.DELETE("/:id", variantHandler.Delete)
	variantRoutes.POST("/:id/repair", variantHandler.Repair)
	variantRoutes.PUT("/:id/channel-prices", channelPriceHandler.SetVariantPrices)

	// Channel domain (branch sales channel switches)
	channelRoutes := router.NewDomainGroup("/channels")
	channelRoutes.POST("/branch-channels", branchChannelHandler.Create)
	channelRoutes.GET("/branch-channels", branchChannelHandler.List)
	channelRoutes.PATCH("/branch-channels/:id/active", branchChannelHandler.SetActive)

	// Staff assignments
	staffRoutes := router.NewDomainGroup("/staff")
	staffRoutes.POST("/assignments/validate", assignmentHandler.Validate)
	staffRoutes.POST("/assignments", assignmentHandler.Save)
	staffRoutes.GET("/assignments", assignmentHandler.ListByUser)
	staffRoutes.DELETE("/assignments/:id", assignmentHandler.Deactivate)

	// Register all domain groups
	r.Register(authRoutes).
		Register(catalogRoutes).
		Register(channelRoutes).
		Register(staffRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

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
		body := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		if stats, err := db.Stats(); err == nil {
			body["pool"] = gin.H{
				"open":    stats.OpenConnections,
				"in_use":  stats.InUse,
				"idle":    stats.Idle,
				"waiting": stats.WaitCount,
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/prodstock/backend/internal/application/catalog"
	stockapp "github.com/prodstock/backend/internal/application/stock"
	"github.com/prodstock/backend/internal/domain/stock"
	"github.com/prodstock/backend/internal/infrastructure/cache"
	"github.com/prodstock/backend/internal/infrastructure/config"
	"github.com/prodstock/backend/internal/infrastructure/event"
	"github.com/prodstock/backend/internal/infrastructure/logger"
	"github.com/prodstock/backend/internal/infrastructure/persistence"
	"github.com/prodstock/backend/internal/interfaces/http/handler"
	"github.com/prodstock/backend/internal/interfaces/http/middleware"
	"github.com/prodstock/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
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

	log.Info("Starting Prodstock Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	houseRepo := persistence.NewGormProductionHouseRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	productionRepo := persistence.NewGormProductionRecordRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRecordRepository(db.DB)
	recalibrationRepo := persistence.NewGormRecalibrationRepository(db.DB)

	// Catalog snapshot loader, optionally fronted by a cache. Redis shares
	// one catalog view across instances; the in-memory cache serves
	// single-node deployments.
	var snapshotCache cache.SnapshotCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		snapshotCache = cache.NewRedisSnapshotCache(redisClient)
		log.Info("Redis snapshot cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		snapshotCache = cache.NewInMemorySnapshotCache()
	}
	snapshots := cache.NewCachedSnapshotLoader(
		persistence.NewGormSnapshotLoader(db.DB),
		snapshotCache,
		cfg.Stock.SnapshotCacheTTL,
		log,
	)

	// Accounting calendar in the configured reference timezone
	loc, err := stock.ParseOffset(cfg.Stock.TimezoneOffset)
	if err != nil {
		log.Fatal("Invalid stock.timezone_offset", zap.Error(err))
	}
	cal := stock.NewCalendar(loc)

	// Reconciliation engine
	stockEngine := stock.NewEngine(productionRepo, deliveryRepo, recalibrationRepo, cal, stock.EngineOptions{
		RollForwardDepth: cfg.Stock.RollForwardDepth,
		ItemSuffixes:     cfg.Stock.ItemSuffixes,
	})

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	auditHandler := stockapp.NewRecalibrationAuditHandler(log)
	eventBus.Subscribe(auditHandler)
	log.Info("Event handlers registered",
		zap.Strings("recalibration_audit_events", auditHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(houseRepo, itemRepo, snapshots)
	stockService := stockapp.NewStockQueryService(snapshots, stockEngine, cfg.Stock.ItemSuffixes)
	recalibrationService := stockapp.NewRecalibrationService(
		recalibrationRepo,
		snapshots,
		cal,
		eventBus,
		cfg.Stock.ItemSuffixes,
		cfg.Stock.DirectApprove,
	)
	if cfg.Stock.DirectApprove {
		log.Info("Direct-approve mode enabled, submissions commit without review")
	}

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	stockHandler := handler.NewStockHandler(stockService)
	recalibrationHandler := handler.NewRecalibrationHandler(recalibrationService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

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

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Submissions and reviews get their own, stricter bucket
	var writeGuard []gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))

		writeLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests/4+1, cfg.HTTP.RateLimitWindow)
		writeGuard = append(writeGuard, middleware.WriteRateLimit(writeLimiter))

		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Houses: catalog plus the per-house stock and recalibration surfaces
	housesRoutes := router.NewDomainGroup("houses", "/houses")
	housesRoutes.GET("", catalogHandler.ListHouses)
	housesRoutes.POST("", catalogHandler.CreateHouse)
	housesRoutes.GET("/:code", catalogHandler.GetHouse)
	housesRoutes.POST("/:code/aliases", catalogHandler.AddAlias)
	housesRoutes.GET("/:code/stock", stockHandler.GetStock)
	housesRoutes.GET("/:code/recalibrations", recalibrationHandler.ListByHouse)
	housesRoutes.POST("/:code/recalibrations", append(writeGuard, recalibrationHandler.Submit)...)

	// Recalibrations addressed by ID: lookup and the review workflow
	recalibrationRoutes := router.NewDomainGroup("recalibrations", "/recalibrations")
	recalibrationRoutes.GET("/:id", recalibrationHandler.GetByID)
	recalibrationRoutes.POST("/:id/approve", append(writeGuard, recalibrationHandler.Approve)...)
	recalibrationRoutes.POST("/:id/reject", append(writeGuard, recalibrationHandler.Reject)...)

	// Items catalog
	itemsRoutes := router.NewDomainGroup("items", "/items")
	itemsRoutes.GET("", catalogHandler.ListItems)
	itemsRoutes.POST("", catalogHandler.CreateItem)
	itemsRoutes.GET("/:key", catalogHandler.GetItem)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(housesRoutes).
		Register(recalibrationRoutes).
		Register(itemsRoutes).
		Register(systemRoutes)

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
		if stats, err := db.PoolStats(); err == nil {
			payload["connections"] = stats
		}
		c.JSON(http.StatusOK, payload)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	dashboardapp "github.com/nasiya/backend/internal/application/dashboard"
	debtorapp "github.com/nasiya/backend/internal/application/debtor"
	identityapp "github.com/nasiya/backend/internal/application/identity"
	loanapp "github.com/nasiya/backend/internal/application/loan"
	messagingapp "github.com/nasiya/backend/internal/application/messaging"
	uploadapp "github.com/nasiya/backend/internal/application/upload"
	"github.com/nasiya/backend/internal/infrastructure/auth"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/nasiya/backend/internal/infrastructure/config"
	"github.com/nasiya/backend/internal/infrastructure/logger"
	"github.com/nasiya/backend/internal/infrastructure/persistence"
	"github.com/nasiya/backend/internal/infrastructure/storage"
	"github.com/nasiya/backend/internal/infrastructure/telemetry"
	"github.com/nasiya/backend/internal/interfaces/http/handler"
	"github.com/nasiya/backend/internal/interfaces/http/middleware"
	"github.com/nasiya/backend/internal/interfaces/http/router"
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
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Nasiya Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
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
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry metrics
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry logs and bridge zap output to the collector
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	if cfg.Telemetry.Enabled {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore)
	}

	// Continuous profiling via Pyroscope
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilingEnabled,
		ServerAddress:       cfg.Telemetry.ProfilingServer,
		ApplicationName:     cfg.Telemetry.ServiceName,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	if cfg.Telemetry.Enabled && cfg.Telemetry.ProfilingEnabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

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

	// Database query tracing
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Database metrics (query latency, slow queries, pool stats)
	if cfg.Telemetry.Enabled {
		dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
		dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("nasiya-backend/db"), dbMetricsCfg, log)
		if err != nil {
			log.Warn("Failed to initialize database metrics", zap.Error(err))
		} else if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Warn("Failed to register database metrics plugin", zap.Error(err))
		}
	}

	// Redis backs the token blacklist and the dashboard read-model cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	tokenBlacklist := auth.NewRedisTokenBlacklistWithClient(redisClient)

	var dashCache cache.DashboardCache
	if cfg.Dashboard.CacheEnabled {
		dashCache = cache.NewRedisDashboardCache(redisClient, cfg.Dashboard.CacheTTL, log)
	} else {
		dashCache = cache.NewInMemoryDashboardCache(cfg.Dashboard.CacheTTL)
	}

	// Object storage for debtor and product images. Without a bucket
	// configured, uploads are kept in process memory (local development).
	var objectStorage uploadapp.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("No storage bucket configured, using in-memory object storage")
		objectStorage = storage.NewMemoryObjectStorage()
	}

	// Initialize repositories
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	walletRepo := persistence.NewGormWalletTransactionRepository(db.DB)
	debtorRepo := persistence.NewGormDebtorRepository(db.DB)
	productRepo := persistence.NewGormBorrowedProductRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRecordRepository(db.DB)
	reportRepo := persistence.NewGormMessageReportRepository(db.DB)
	sampleRepo := persistence.NewGormMessageSampleRepository(db.DB)

	// Per-message price debited from the seller wallet
	messagePrice, err := decimal.NewFromString(cfg.Messaging.MessagePrice)
	if err != nil {
		log.Fatal("Invalid messaging.message_price", zap.Error(err))
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(sellerRepo, jwtService, tokenBlacklist, identityapp.DefaultAuthServiceConfig(), log)
	sellerService := identityapp.NewSellerService(sellerRepo, walletRepo, log)
	debtorService := debtorapp.NewDebtorService(debtorRepo, productRepo, dashCache, log)
	loanService := loanapp.NewLoanService(productRepo, paymentRepo, debtorRepo, dashCache, log)
	messagingService := messagingapp.NewMessagingService(reportRepo, sampleRepo, debtorRepo, sellerRepo, walletRepo, messagePrice, log)
	dashboardService := dashboardapp.NewDashboardService(productRepo, debtorRepo, dashCache, log)
	uploadService := uploadapp.NewUploadService(objectStorage, cfg.Storage.MaxUploadSize, log)

	// Business metrics (credit issuance, repayments, wallet activity)
	if cfg.Telemetry.Enabled {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:             meterProvider.Meter("nasiya-backend/business"),
			Logger:            log,
			PortfolioProvider: telemetry.NewGormPortfolioMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			loanService.SetBusinessMetrics(businessMetrics)
			messagingService.SetBusinessMetrics(businessMetrics)
			businessMetrics.StartPeriodicCollection(ctx, telemetry.NewGormSellerProvider(db.DB), 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	sellerHandler := handler.NewSellerHandler(sellerService, dashboardService)
	debtorHandler := handler.NewDebtorHandler(debtorService)
	loanHandler := handler.NewLoanHandler(loanService)
	messagingHandler := handler.NewMessagingHandler(messagingService)
	uploadHandler := handler.NewUploadHandler(uploadService, log)
	systemHandler := handler.NewSystemHandler()

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
	// 4. Tracing/Metrics/Profiling - Telemetry per request
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
			Enabled:   true,
			SkipPaths: []string{"/health"},
		}))
	}
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
			"/api/v1/system/info",
			"/api/v1/system/health",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain - public auth routes plus logout
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		}))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)

	// Seller domain (profile, wallet, dashboard aggregates)
	sellerRoutes := router.NewDomainGroup("seller", "/seller")
	sellerRoutes.GET("/profile", sellerHandler.GetProfile)
	sellerRoutes.PATCH("/profile", sellerHandler.UpdateProfile)
	sellerRoutes.POST("/password", sellerHandler.ChangePassword)
	sellerRoutes.POST("/wallet/payments", sellerHandler.TopUpWallet)
	sellerRoutes.GET("/wallet/transactions", sellerHandler.WalletTransactions)
	sellerRoutes.GET("/month-total", sellerHandler.MonthTotal)
	sellerRoutes.GET("/late-customers", sellerHandler.LateCustomers)
	sellerRoutes.GET("/total-debt", sellerHandler.TotalDebt)
	sellerRoutes.GET("/dates", sellerHandler.PaymentDays)
	sellerRoutes.GET("/dates/:day", sellerHandler.PaymentsForDay)

	// Debtor domain
	debtorRoutes := router.NewDomainGroup("debtor", "/debtors")
	debtorRoutes.POST("", debtorHandler.Create)
	debtorRoutes.GET("", debtorHandler.List)
	debtorRoutes.GET("/:id", debtorHandler.Get)
	debtorRoutes.PATCH("/:id", debtorHandler.Update)
	debtorRoutes.DELETE("/:id", debtorHandler.Delete)
	debtorRoutes.GET("/:id/borrowed-products", loanHandler.DebtorProducts)

	// Loan domain (borrowed products and repayments)
	loanRoutes := router.NewDomainGroup("loan", "/borrowed-products")
	loanRoutes.POST("", loanHandler.CreateProduct)
	loanRoutes.GET("/:id", loanHandler.GetProduct)
	loanRoutes.PATCH("/:id", loanHandler.UpdateProduct)
	loanRoutes.DELETE("/:id", loanHandler.DeleteProduct)
	loanRoutes.POST("/:id/payments", loanHandler.RecordPayment)
	loanRoutes.GET("/:id/payments", loanHandler.ProductPayments)

	// Seller-wide repayment history
	paymentRoutes := router.NewDomainGroup("payment-history", "/payment-history")
	paymentRoutes.GET("", loanHandler.PaymentHistory)

	// Messaging domain (reminder reports and samples)
	reportRoutes := router.NewDomainGroup("message-report", "/message-reports")
	reportRoutes.POST("", messagingHandler.Send)
	reportRoutes.GET("", messagingHandler.ListReports)
	reportRoutes.DELETE("/:id", messagingHandler.DeleteReport)

	sampleRoutes := router.NewDomainGroup("message-sample", "/message-samples")
	sampleRoutes.POST("", messagingHandler.CreateSample)
	sampleRoutes.GET("", messagingHandler.ListSamples)
	sampleRoutes.PATCH("/:id", messagingHandler.UpdateSample)
	sampleRoutes.DELETE("/:id", messagingHandler.DeleteSample)

	// Image uploads
	uploadRoutes := router.NewDomainGroup("upload", "/uploads")
	uploadRoutes.POST("", uploadHandler.Upload)
	uploadRoutes.GET("/*path", uploadHandler.Fetch)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	// Register all domain groups
	r.Register(authRoutes).
		Register(sellerRoutes).
		Register(debtorRoutes).
		Register(loanRoutes).
		Register(paymentRoutes).
		Register(reportRoutes).
		Register(sampleRoutes).
		Register(uploadRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
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
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

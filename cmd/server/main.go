package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/erp/ledger/internal/infrastructure/auth"
	"github.com/erp/ledger/internal/infrastructure/cache"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/event"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/infrastructure/persistence"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/erp/ledger/internal/interfaces/http/handler"
	"github.com/erp/ledger/internal/interfaces/http/middleware"
	"github.com/erp/ledger/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/erp/ledger/docs"
)

const serviceVersion = "1.0.0"

//	@title			Ledger API
//	@version		1.0
//	@description	Chart of accounts with journal rollups

//	@contact.name	API Support
//	@contact.url	https://github.com/erp/ledger

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

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
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ledger service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// Database
	var dbOpts []persistence.Option
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
		dbOpts = append(dbOpts, persistence.WithTracing(telemetry.NewDBTracingPlugin(dbTracing, log)))
	}
	db, err := persistence.NewDatabase(&cfg.Database, log, dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Events
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application service
	var metrics *telemetry.LedgerMetrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewLedgerMetrics()
	}

	serviceOpts := []ledgerapp.ServiceOption{
		ledgerapp.WithLogger(log),
		ledgerapp.WithRetryAttempts(cfg.Ledger.CodeRetryAttempts),
		ledgerapp.WithPageSizes(cfg.Ledger.DefaultPageSize, cfg.Ledger.MaxPageSize),
	}
	if metrics != nil {
		serviceOpts = append(serviceOpts, ledgerapp.WithMetrics(metrics))
	}

	closeCache := func() error { return nil }
	if cfg.Ledger.TreeCacheEnabled {
		factory := cache.NewTreeCacheFactory(cfg.Redis, cache.WithLogger(log))
		treeCache, closer, err := factory.Create(cfg.Ledger.TreeCacheBackend)
		if err != nil {
			log.Fatal("Failed to create account tree cache", zap.Error(err))
		}
		closeCache = closer
		eventBus.Subscribe(ledgerapp.NewTreeCacheInvalidator(treeCache, log))
		serviceOpts = append(serviceOpts, ledgerapp.WithTreeCache(treeCache, cfg.Ledger.TreeCacheTTL))
		log.Info("Account tree cache enabled",
			zap.String("backend", cfg.Ledger.TreeCacheBackend),
			zap.Duration("ttl", cfg.Ledger.TreeCacheTTL),
		)
	}

	uow := persistence.NewGormUnitOfWork(db.DB)
	accountService := ledgerapp.NewAccountTreeService(uow, eventBus, serviceOpts...)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountService)
	healthHandler := handler.NewHealthHandler(db)

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

	// Middleware order:
	// RequestID, Recovery, access log, tracing (+ span enrichment and error status),
	// metrics, security headers, body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tp.IsEnabled(),
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	if metrics != nil {
		engine.Use(middleware.HTTPMetrics(metrics))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Operational endpoints (outside API versioning)
	engine.GET("/health", healthHandler.Health)
	if metrics != nil {
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Swagger documentation endpoint
	router.RegisterSwagger(engine)

	// API routes
	var routerOpts []router.RouterOption
	var guard router.PermissionGuard
	if cfg.JWT.AuthEnabled {
		jwtService := auth.NewJWTService(cfg.JWT)
		routerOpts = append(routerOpts, router.WithGroupMiddleware(
			middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService: jwtService,
				Logger:     log,
			}),
		))
		guard = func(permission string) gin.HandlerFunc {
			return middleware.RequireAnyPermissionWithConfig(middleware.PermissionConfig{Logger: log}, permission)
		}
	} else {
		log.Warn("JWT authentication disabled; ledger API is open")
	}

	r := router.NewRouter(engine, routerOpts...)
	r.Register(router.NewAccountRoutes(accountHandler, guard))
	r.Setup()

	// Seed the standard root accounts
	if changed, err := accountService.BootstrapRoots(context.Background()); err != nil {
		log.Error("Failed to bootstrap root accounts", zap.Error(err))
	} else if changed > 0 {
		log.Info("Root accounts bootstrapped", zap.Int("changed", changed))
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	if err := closeCache(); err != nil {
		log.Warn("Error closing account tree cache", zap.Error(err))
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/branchstock/backend/internal/application/catalog"
	"github.com/branchstock/backend/internal/application/movement"
	partnerapp "github.com/branchstock/backend/internal/application/partner"
	"github.com/branchstock/backend/internal/application/reconciliation"
	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/branchstock/backend/internal/infrastructure/cache"
	"github.com/branchstock/backend/internal/infrastructure/config"
	"github.com/branchstock/backend/internal/infrastructure/logger"
	"github.com/branchstock/backend/internal/infrastructure/persistence"
	"github.com/branchstock/backend/internal/infrastructure/telemetry"
	"github.com/branchstock/backend/internal/interfaces/http/handler"
	"github.com/branchstock/backend/internal/interfaces/http/middleware"
	"github.com/branchstock/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Branch Stock API
// @version         1.0
// @description     Inventory and balance reconciliation for retail branches.
// @description     Stock, sales returns and customer balances are kept consistent on every movement.

// @contact.name   API Support

// @license.name  MIT

// @BasePath  /api/v1

// @schemes   http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, cfg.Telemetry.SamplingRatio, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, cfg.Telemetry.MetricsExportInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logTelCfg := telCfg
	logTelCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, logTelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, telemetry.TracerName, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		ProfileTypes:    cfg.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("Profiler stop failed", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThreshold))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// postgres schemas are owned by cmd/migrate
	if cfg.Database.Driver == config.DriverSQLite {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:        cfg.Database.Driver,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThreshold,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	meter := meterProvider.Meter(telemetry.TracerName)
	if sqlDB, err := db.DB.DB(); err == nil {
		if reg, err := telemetry.RegisterPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("Connection pool metrics unavailable", zap.Error(err))
		} else {
			defer func() { _ = reg.Unregister() }()
		}
	}
	movementMetrics, err := telemetry.NewMovementMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create movement metrics", zap.Error(err))
	}

	idempotencyStore := cache.NewIdempotencyStore(&cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Repositories
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	saleRepo := persistence.NewGormSaleTransactionRepository(db.DB)
	returnRepo := persistence.NewGormSalesReturnRepository(db.DB)
	stockRepo := persistence.NewGormStockEntryRepository(db.DB)

	// Application services
	movementService := movement.NewService(
		persistence.NewGormTransactionScope(db.DB),
		movement.WithLogger(log),
		movement.WithRetryPolicy(movement.RetryPolicy{
			MaxRetries:      uint64(max(cfg.Movement.RetryMaxAttempts-1, 0)),
			InitialInterval: cfg.Movement.RetryInitialInterval,
			MaxInterval:     cfg.Movement.RetryMaxInterval,
		}),
		movement.WithStrictAmounts(cfg.Movement.StrictAmounts),
		movement.WithIdempotency(idempotencyStore, shared.IdempotencyConfig{
			Enabled: cfg.Movement.IdempotencyEnabled,
			TTL:     cfg.Movement.IdempotencyTTL,
		}),
		movement.WithMetrics(movementMetrics),
	)
	queryService := reconciliation.NewQueryService(saleRepo, returnRepo, stockRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	articleService := catalog.NewArticleService(articleRepo)
	itemService := catalog.NewItemService(itemRepo, articleRepo)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   []string{"/health"},
	})...)
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", handler.NewSystemHandler(db).Health)

	routes := handler.Routes{
		Stock:     handler.NewStockHandler(movementService, queryService),
		Returns:   handler.NewReturnHandler(movementService, queryService),
		Customers: handler.NewCustomerHandler(customerService, queryService),
		Items:     handler.NewItemHandler(itemService),
		Articles:  handler.NewArticleHandler(articleService),
	}
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(routes.Groups()...).Setup()
	log.Info("Routes registered", zap.String("base_path", r.BasePath()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

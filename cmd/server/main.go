package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	analysisapp "github.com/GaudenzB/blueearth-contracts/internal/application/analysis"
	contractapp "github.com/GaudenzB/blueearth-contracts/internal/application/contract"
	documentapp "github.com/GaudenzB/blueearth-contracts/internal/application/document"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/auth"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/cache"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/config"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/extraction"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/logger"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/persistence"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/storage"
	"github.com/GaudenzB/blueearth-contracts/internal/infrastructure/telemetry"
	"github.com/GaudenzB/blueearth-contracts/internal/interfaces/http/handler"
	"github.com/GaudenzB/blueearth-contracts/internal/interfaces/http/middleware"
	"github.com/GaudenzB/blueearth-contracts/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting contract service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Object storage
	objectStore, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	log.Info("Object storage ready",
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("region", cfg.Storage.Region),
	)

	// Analysis status cache: Redis-backed when available, in-process otherwise
	var redisClient *redis.Client
	var statusCache cache.StatusCache
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
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
		statusCache = cache.NewRedisStatusCacheWithClient(redisClient, cfg.Redis.TTL)
		log.Info("Redis status cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		statusCache = cache.NewInMemoryStatusCache(cfg.Redis.TTL)
	}

	// Repositories
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	analysisRepo := persistence.NewGormAnalysisRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	obligationRepo := persistence.NewGormObligationRepository(db.DB)
	documentLinkRepo := persistence.NewGormDocumentLinkRepository(db.DB)
	prefillRepo := persistence.NewGormPrefillRepository(db.DB)

	// Extraction backend: remote service when configured, heuristic otherwise
	var extractor extraction.Extractor
	if cfg.Analysis.ExtractorURL != "" {
		extractor = extraction.NewRemoteExtractor(cfg.Analysis)
		log.Info("Remote extractor configured", zap.String("url", cfg.Analysis.ExtractorURL))
	} else {
		extractor = extraction.NewHeuristicExtractor()
		log.Info("Heuristic extractor configured")
	}

	// Background analysis worker pool
	worker := analysisapp.NewWorker(
		analysisRepo,
		documentRepo,
		contractRepo,
		objectStore,
		extractor,
		statusCache,
		analysisapp.WorkerConfig{
			Workers:        cfg.Analysis.Workers,
			QueueSize:      cfg.Analysis.QueueSize,
			ExtractTimeout: cfg.Analysis.ExtractorTimeout,
		},
		log,
	)
	if err := worker.Start(context.Background()); err != nil {
		log.Fatal("Failed to start analysis workers", zap.Error(err))
	}
	defer func() {
		if err := worker.Stop(context.Background()); err != nil {
			log.Error("Error stopping analysis workers", zap.Error(err))
		}
	}()
	log.Info("Analysis workers started",
		zap.Int("workers", cfg.Analysis.Workers),
		zap.Int("queue_size", cfg.Analysis.QueueSize),
	)

	// Application services
	documentService := documentapp.NewService(documentRepo, objectStore, cfg.Storage.KeyPrefix, log)
	analysisService := analysisapp.NewService(analysisRepo, documentRepo, statusCache, worker, log)
	contractService := contractapp.NewService(contractRepo, log)
	obligationService := contractapp.NewObligationService(obligationRepo, contractRepo, log)
	attachmentService := contractapp.NewAttachmentService(documentLinkRepo, contractRepo, documentRepo, log)
	prefillService := contractapp.NewPrefillService(prefillRepo, documentRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
		engine.Use(middleware.HTTPMetrics(meterProvider.Meter("http.server")))
	}

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxUploadSize))

	if cfg.HTTP.RateLimitEnabled {
		var limiter middleware.Limiter
		if redisClient != nil {
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		} else {
			limiter = middleware.NewMemoryRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		}
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/ready"},
	}))

	systemHandler := handler.NewSystemHandler(db, version)
	systemHandler.RegisterRoutes(engine)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewDocumentHandler(documentService)).
		Register(handler.NewAnalysisHandler(analysisService)).
		Register(handler.NewContractHandler(contractService)).
		Register(handler.NewObligationHandler(obligationService)).
		Register(handler.NewAttachmentHandler(attachmentService)).
		Register(handler.NewPrefillHandler(prefillService))
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

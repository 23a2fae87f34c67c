// @title Hangul Quiz API
// @version 1.0
// @description Korean fill-in-the-blank and dialogue quiz API with an adaptive level test.
// @host localhost:4000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "hangul-quiz/cmd/api/docs"
	"hangul-quiz/internal/adapter"
	"hangul-quiz/internal/adapter/llm"
	"hangul-quiz/internal/adapter/quizgen"
	"hangul-quiz/internal/cache"
	"hangul-quiz/internal/config"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/handler"
	"hangul-quiz/internal/logger"
	"hangul-quiz/internal/metrics"
	"hangul-quiz/internal/middleware"
	"hangul-quiz/internal/repository"
	"hangul-quiz/internal/service"
	"hangul-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Question bank
	bankRepository := repository.NewFileBankRepository(cfg.Storage.QuestionsPath, appLogger)
	appLogger.Info("Question bank configured",
		zap.String("path", bankRepository.Path()),
		zap.Bool("exists", bankRepository.Exists()),
	)

	// Completion provider. The server still serves stored questions without one.
	var generator service.QuestionGenerator
	textGenerator, err := llm.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		appLogger.Warn("Question generation disabled", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	} else {
		generator = quizgen.NewGenerator(textGenerator, cfg.LLM.Timeout, appLogger)
		appLogger.Info("Completion provider initialized", zap.String("provider", textGenerator.Name()))
	}

	// Session store: Redis when configured, otherwise in-process
	var sessionCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		sessionCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		sessionCache = adapter.NewMemoryCacheAdapter()
		appLogger.Info("Redis not configured, keeping level test sessions in memory")
	}
	sessionStore := repository.NewSessionCacheRepository(sessionCache, cfg.Session.TTL)

	// Initialize services
	questionService := service.NewQuestionService(bankRepository, generator, appMetrics)
	sessionService := service.NewSessionService(bankRepository, sessionStore, appMetrics)

	// Initialize handlers
	validator := validation.NewValidator(cfg.Generation.MaxPerLevel)
	routes := handler.Routes{
		Questions:   handler.NewQuestionHandler(questionService, validator, cfg.Generation.DefaultPerLevel),
		Sessions:    handler.NewSessionHandler(sessionService),
		Validation:  middleware.NewValidationMiddleware(validator),
		RateLimiter: middleware.NewRateLimiter(cfg.Generation.RateLimit.Requests, cfg.Generation.RateLimit.Window),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    2 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(appMetrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.ClientOrigin,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(appMetrics.Handler()))
	handler.RegisterRoutes(app, routes)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

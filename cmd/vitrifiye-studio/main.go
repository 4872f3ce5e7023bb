package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrifiye-studio/internal/api"
	"vitrifiye-studio/internal/api/handlers"
	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/recommend"
	"vitrifiye-studio/internal/repository"
	"vitrifiye-studio/internal/service"
	"vitrifiye-studio/pkg/auth"
	"vitrifiye-studio/pkg/config"
	"vitrifiye-studio/pkg/logger"
	"vitrifiye-studio/pkg/postgres"
	redisclient "vitrifiye-studio/pkg/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title Vitrifiye Studio API
// @version 1.0
// @description Bathroom product catalog, style quiz with AI-assisted recommendations and saved room designs

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Vitrifiye Studio service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	productRepo := repository.NewProductRepository(db, appLogger)
	questionRepo := repository.NewQuizQuestionRepository(db, appLogger)
	resultRepo := repository.NewQuizResultRepository(db, appLogger)
	configRepo := repository.NewConfigurationRepository(db, appLogger)

	var source catalog.Source = productRepo
	if cfg.Catalog.Source == "json" {
		source = catalog.NewJSONFileSource(cfg.Catalog.JSONPath)
	}
	store := catalog.NewStore(source, logger.Named("catalog"))
	if err := store.Preload(ctx); err != nil {
		appLogger.Fatal("Failed to load catalog", zap.String("source", cfg.Catalog.Source), zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redisclient.NewClient(ctx, &cfg.Redis, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, result cache disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	resultCache := service.NewResultCache(rdb, cfg.Redis.ResultTTL, logger.Named("result_cache"))

	// The capability stays a nil interface when GigaChat is not configured so
	// the engine runs rule-based only.
	var capability recommend.Capability
	if cfg.Recommend.AIEnabled && cfg.GigaChat.APIKey != "" {
		llmService, err := service.NewLLMService(&cfg.GigaChat, &cfg.Recommend, logger.Named("gigachat"))
		if err != nil {
			appLogger.Warn("GigaChat unavailable, using rule-based recommendations", zap.Error(err))
		} else {
			defer llmService.Close()
			capability = llmService
		}
	} else {
		appLogger.Info("AI recommendations disabled")
	}

	engine := recommend.NewEngine(store, capability, recommend.Config{
		AIEnabled:         cfg.Recommend.AIEnabled,
		CapabilityTimeout: cfg.Recommend.LLMTimeout,
	}, logger.Named("recommend"))

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	productService := service.NewProductService(store, appLogger)
	quizService := service.NewQuizService(questionRepo, resultRepo, engine, store, resultCache, appLogger)
	configService := service.NewConfigurationService(configRepo, store, appLogger)
	profileService := service.NewProfileService(userRepo, configService, quizService, appLogger)

	app := api.SetupRouter(api.Handlers{
		Auth:          handlers.NewAuthHandler(authService, appLogger),
		Product:       handlers.NewProductHandler(productService, appLogger),
		Quiz:          handlers.NewQuizHandler(quizService, appLogger),
		Configuration: handlers.NewConfigurationHandler(configService, appLogger),
		Profile:       handlers.NewProfileHandler(profileService, appLogger),
	}, jwtManager, api.RouterConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		RequestLogging: true,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

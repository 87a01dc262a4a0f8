package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finlens/internal/api"
	"finlens/internal/api/handlers"
	"finlens/internal/catalog"
	"finlens/internal/classify"
	"finlens/internal/detect"
	"finlens/internal/repository"
	"finlens/internal/sanitize"
	"finlens/internal/service"
	"finlens/pkg/auth"
	"finlens/pkg/config"
	"finlens/pkg/logger"
	"finlens/pkg/postgres"

	"go.uber.org/zap"
)

// @title FinLens API
// @version 1.0
// @description Bank statement classification and privacy-preserving insight service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting FinLens service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The merchant catalog must be complete before classification
	// starts; a partial catalog would misclassify silently.
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		appLogger.Fatal("Failed to load merchant catalog", zap.Error(err))
	}
	catalogs := catalog.NewStore(cat)
	appLogger.Info("Merchant catalog loaded", zap.Int("merchants", cat.Size()))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize pipeline components
	detector := detect.NewDetector(catalogs)
	classifier := classify.New(catalogs, appLogger)
	sanitizer := sanitize.New(detector)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	statementService := service.NewStatementService(
		txRepo, detector, classifier, catalogs,
		cfg.Catalog.Path, cfg.Classifier.Workers, appLogger)

	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	insightService := service.NewInsightService(txRepo, sanitizer, llmService, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	txHandler := handlers.NewTransactionHandler(statementService, appLogger)
	insightHandler := handlers.NewInsightHandler(insightService, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, txHandler, insightHandler, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"misto-helper/internal/api"
	"misto-helper/internal/api/handlers"
	"misto-helper/internal/repository"
	"misto-helper/internal/service"
	"misto-helper/pkg/config"
	"misto-helper/pkg/logger"
	"misto-helper/pkg/postgres"

	"go.uber.org/zap"
)

// @title Misto Helper API
// @version 1.0
// @description Municipal complaint classification and routing service

// @contact.name API Support
// @contact.email support@misto-helper.lviv.ua

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

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
	appLogger.Info("Starting Misto Helper service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	exampleRepo := repository.NewExampleRepository(db, appLogger)
	serviceRepo := repository.NewServiceRepository(db, appLogger)

	// Initialize services
	llmService, err := service.NewLLMService(&cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	classifier := service.NewClassifier(&cfg.Classifier, llmService, llmService, exampleRepo, categoryRepo, appLogger)
	resolver := service.NewServiceResolver(&cfg.Router, serviceRepo, categoryRepo, appLogger)
	appeals := service.NewAppealService(llmService, appLogger)
	orchestrator := service.NewOrchestrator(classifier, resolver, appeals, categoryRepo, appLogger)

	// Initialize handlers
	complaintHandler := handlers.NewComplaintHandler(classifier, resolver, appeals, orchestrator, categoryRepo, appLogger)
	healthHandler := handlers.NewHealthHandler(db, appLogger)

	// Setup router
	app := api.SetupRouter(complaintHandler, healthHandler)

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

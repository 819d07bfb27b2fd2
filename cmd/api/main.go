package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homebudget/internal/config"
	"homebudget/internal/database"
	"homebudget/internal/logger"
	"homebudget/internal/money"
	"homebudget/internal/router"
	"homebudget/internal/services"
	"homebudget/internal/validator"
)

// @title           Home Budget API
// @version         1.0
// @description     Track expenses and incomes against a running balance and summarise them by period.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	initialBalance, err := money.FromDecimal(appConfig.InitialBalance)
	if err != nil {
		return fmt.Errorf("invalid INITIAL_BALANCE: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed categories
	seedCtx, cancel := context.WithTimeout(ctx, appConfig.RequestTimeout)
	created, err := services.NewCategoryService(dbManager.DB()).SeedCategories(seedCtx, appConfig.SeedCategories)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	log.Infow("Categories ready", "created", created)

	validator.Register()

	srv := &http.Server{
		Addr: ":" + appConfig.Port,
		Handler: router.Handler(router.Deps{
			Config:         appConfig,
			DB:             dbManager.DB(),
			InitialBalance: initialBalance,
			Pinger:         dbManager,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Home Budget server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

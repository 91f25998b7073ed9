package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-idx-screener/internal/screener/config"
	delivery "golang-idx-screener/internal/screener/delivery/http"
	"golang-idx-screener/internal/screener/repository"
	"golang-idx-screener/internal/screener/service"
	"golang-idx-screener/pkg/logger"
	"golang-idx-screener/pkg/redis"
	"golang-idx-screener/pkg/telegram"
	"golang-idx-screener/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the screener service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Screener Service", logger.Field("name", cfg.App.Name))

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize Telegram notifier when configured
	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	tvRepo := repository.NewTradingViewRepository(cfg, appLogger)
	settingsRepo := repository.NewSettingsRepository(redisClient.Client)

	// Initialize services
	scanSvc := service.NewScanService(tvRepo, appLogger)
	screenerSvc := service.NewScreenerService(appLogger)
	paramsSvc := service.NewParamsService(settingsRepo, appLogger)
	watchlistSvc := service.NewWatchlistService(settingsRepo, appLogger)

	// Start the scheduled auto-scan when enabled
	autoScanSvc := service.NewAutoScanService(cfg, scanSvc, screenerSvc, paramsSvc, notifier, appLogger)
	if err := autoScanSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start auto-scan scheduler", logger.ErrorField(err))
	}
	defer autoScanSvc.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	screenerHandler := delivery.NewScreenerHandler(scanSvc, screenerSvc, paramsSvc, appLogger)
	screenerGroup := apiV1.Group("/screener")
	screenerHandler.RegisterRoutes(screenerGroup)

	paramsHandler := delivery.NewParamsHandler(paramsSvc, appLogger)
	paramsGroup := screenerGroup.Group("/params")
	paramsHandler.RegisterRoutes(paramsGroup)

	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	watchlistGroup := apiV1.Group("/watchlist")
	watchlistHandler.RegisterRoutes(watchlistGroup)

	// Start server
	utils.GoSafe(func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	})

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "screener-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-screener.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing screener-service CLI: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-advisor/internal/api"
	"farm-advisor/internal/config"
	"farm-advisor/internal/i18n"
	"farm-advisor/internal/models"
	"farm-advisor/internal/scheduler"
	"farm-advisor/internal/services"
	"farm-advisor/pkg/client"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Farm Advisor Service")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if level, err := zapcore.ParseLevel(cfg.Server.LogLevel); err == nil && level != zapcore.InfoLevel {
		logger = newLogger(level)
		zap.ReplaceGlobals(logger)
	}

	catalog, err := i18n.Load()
	if err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	sessions := services.NewSessionStore(cfg.Session.TTL, cfg.Session.MaxSize, models.Language(cfg.Server.DefaultLang), logger)

	stress := services.NewMockStressCalculator(cfg.Analysis.StressDelay, logger)
	weather := newWeatherFetcher(cfg, logger)
	analyzer := services.NewAnalyzer(stress, weather, sessions, catalog, logger)

	sweeper := scheduler.NewSweeper(sessions, cfg.Session.SweepSpec, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		JSONEncoder:  json.Marshal,
		ErrorHandler: api.ErrorHandler,
	})

	handler := api.NewHandler(analyzer, sessions, sweeper, catalog, logger)
	api.SetupRoutes(app, handler, sessions, cfg.Session.TTL, logger)

	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start session sweeper", zap.Error(err))
	}

	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweeper.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(level zapcore.Level) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return zap.L()
	}
	return logger
}

func newWeatherFetcher(cfg *config.Config, logger *zap.Logger) services.WeatherFetcher {
	clientConfig := client.ClientConfig{
		Timeout:        cfg.WeatherAPI.Timeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}

	switch cfg.WeatherAPI.Backend {
	case config.WeatherBackendOpenMeteo:
		logger.Info("Open-Meteo weather backend initialized")
		return client.NewOpenMeteoClient(cfg.WeatherAPI.OpenMeteoURL, cfg.WeatherAPI.GeocodingURL, clientConfig, logger)
	case config.WeatherBackendOpenWeather:
		logger.Info("OpenWeatherMap weather backend initialized")
		return client.NewOpenWeatherClient(cfg.WeatherAPI.OpenWeatherAPIKey, cfg.WeatherAPI.OpenWeatherURL, clientConfig, logger)
	default:
		logger.Info("Mock weather backend initialized", zap.Duration("delay", cfg.Analysis.WeatherDelay))
		return services.NewMockWeatherFetcher(cfg.Analysis.WeatherDelay, logger)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	WeatherBackendMock        = "mock"
	WeatherBackendOpenMeteo   = "openmeteo"
	WeatherBackendOpenWeather = "openweather"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
		DefaultLang  string
	}

	Analysis struct {
		StressDelay  time.Duration
		WeatherDelay time.Duration
	}

	WeatherAPI struct {
		Backend           string
		OpenWeatherAPIKey string
		OpenWeatherURL    string
		OpenMeteoURL      string
		GeocodingURL      string
		Timeout           time.Duration
	}

	Session struct {
		TTL       time.Duration
		MaxSize   int
		SweepSpec string
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Server.DefaultLang = getEnv("DEFAULT_LANG", "en")

	// Artificial latency of the stub backends
	cfg.Analysis.StressDelay = parseDuration(getEnv("STRESS_DELAY", "800ms"))
	cfg.Analysis.WeatherDelay = parseDuration(getEnv("WEATHER_DELAY", "500ms"))

	cfg.WeatherAPI.Backend = getEnv("WEATHER_BACKEND", WeatherBackendMock)
	cfg.WeatherAPI.OpenWeatherAPIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.WeatherAPI.OpenWeatherURL = getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5")
	cfg.WeatherAPI.OpenMeteoURL = getEnv("OPENMETEO_URL", "https://api.open-meteo.com/v1")
	cfg.WeatherAPI.GeocodingURL = getEnv("OPENMETEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1")
	cfg.WeatherAPI.Timeout = parseDuration(getEnv("WEATHER_API_TIMEOUT", "10s"))

	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "30m"))
	cfg.Session.MaxSize = parseInt(getEnv("MAX_SESSIONS", "1000"))
	cfg.Session.SweepSpec = getEnv("SESSION_SWEEP_SPEC", "@every 1m")

	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "3"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.WeatherAPI.Backend {
	case WeatherBackendMock, WeatherBackendOpenMeteo:
	case WeatherBackendOpenWeather:
		if c.WeatherAPI.OpenWeatherAPIKey == "" {
			return fmt.Errorf("OPENWEATHER_API_KEY is required for the %s backend", WeatherBackendOpenWeather)
		}
	default:
		return fmt.Errorf("unknown weather backend %q", c.WeatherAPI.Backend)
	}

	if c.Server.DefaultLang != "en" && c.Server.DefaultLang != "de" {
		return fmt.Errorf("unsupported default language %q", c.Server.DefaultLang)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.MaxSize <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}

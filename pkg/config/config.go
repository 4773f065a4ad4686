package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	// LogFormat overrides the environment-derived format ("text" or
	// "json"). Empty keeps text in development, JSON in production.
	LogFormat string

	// Database. Empty means a local SQLite database under DataDir.
	DatabaseURL string
	DataDir     string

	// Redis. Empty disables the health score cache.
	RedisURL       string
	HealthCacheTTL time.Duration

	// RabbitMQ. Empty selects the no-op publisher.
	RabbitMQURL string

	// Costing. The single fallback rate applied to contributors
	// without a configured hourly rate, on every evaluation path.
	DefaultHourlyRate float64
	Currency          string

	// Worker
	SweepInterval    time.Duration
	SweepOnStart     bool
	WorkerHealthAddr string

	// Holded. Empty API key disables the integration.
	HoldedAPIKey  string
	HoldedBaseURL string

	// Alerting thresholds for insight generation.
	AlertDaysWithoutContact  int
	AlertDaysBeforeDeadline  int
	AlertDaysWithoutActivity int
	AlertMaxOpenTasks        int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DataDir:     getEnv("PULSO_DATA_DIR", getDefaultDataDir()),

		RedisURL:       getEnv("REDIS_URL", ""),
		HealthCacheTTL: getDurationEnv("HEALTH_CACHE_TTL", 5*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		DefaultHourlyRate: getFloatEnv("DEFAULT_HOURLY_RATE", 40.0),
		Currency:          getEnv("CURRENCY", "EUR"),

		SweepInterval:    getDurationEnv("SWEEP_INTERVAL", 15*time.Minute),
		SweepOnStart:     getBoolEnv("SWEEP_ON_START", true),
		WorkerHealthAddr: getEnv("WORKER_HEALTH_ADDR", "0.0.0.0:8081"),

		HoldedAPIKey:  getEnv("HOLDED_API_KEY", ""),
		HoldedBaseURL: getEnv("HOLDED_BASE_URL", "https://api.holded.com/api"),

		AlertDaysWithoutContact:  getIntEnv("ALERT_DAYS_WITHOUT_CONTACT", 10),
		AlertDaysBeforeDeadline:  getIntEnv("ALERT_DAYS_BEFORE_DEADLINE", 3),
		AlertDaysWithoutActivity: getIntEnv("ALERT_DAYS_WITHOUT_ACTIVITY", 14),
		AlertMaxOpenTasks:        getIntEnv("ALERT_MAX_OPEN_TASKS", 15),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SQLitePath returns the path of the local database file used when no
// DATABASE_URL is configured.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "pulso.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pulso"
	}
	return filepath.Join(home, ".pulso")
}

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Config holds all configuration for the bot
type Config struct {
	// Telegram
	TelegramToken string

	// Mode
	Debug bool

	// Paths
	AssetsDir    string
	OutputDir    string
	DatabasePath string

	// Rendering
	RenderWorkers   int
	OutputRetention time.Duration

	// Market data caches
	PriceCacheTTL     time.Duration
	PrecisionCacheTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Debug:         getEnvBool("DEBUG", false),

		AssetsDir:    getEnv("ASSETS_DIR", "assets"),
		OutputDir:    getEnv("OUTPUT_DIR", "output"),
		DatabasePath: getEnv("DATABASE_PATH", "data/marathon.db"),

		RenderWorkers:   getEnvInt("RENDER_WORKERS", runtime.NumCPU()),
		OutputRetention: getEnvDuration("OUTPUT_RETENTION", time.Hour),

		PriceCacheTTL:     getEnvDuration("PRICE_CACHE_TTL", 10*time.Second),
		PrecisionCacheTTL: getEnvDuration("PRECISION_CACHE_TTL", time.Hour),
	}

	// Validate required fields
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.RenderWorkers < 1 {
		cfg.RenderWorkers = 1
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

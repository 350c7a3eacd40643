package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath string
	HistoryDir   string
	TaxonomyPath string
	NewsAPIKey   string
	LogLevel     string
	Port         int
	DevMode      bool

	// Analysis knobs
	LookbackDays   int // how far back the daily analysis reaches
	WindowDays     int // rolling intensity window
	TopFactorCount int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvAsInt("PORT", 8080),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		DatabasePath:   getEnv("DATABASE_PATH", "./data/goldlens.db"),
		HistoryDir:     getEnv("HISTORY_DIR", "./data/history"),
		TaxonomyPath:   getEnv("TAXONOMY_PATH", ""),
		NewsAPIKey:     getEnv("NEWS_API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LookbackDays:   getEnvAsInt("ANALYSIS_LOOKBACK_DAYS", 30),
		WindowDays:     getEnvAsInt("ANALYSIS_WINDOW_DAYS", 7),
		TopFactorCount: getEnvAsInt("TOP_FACTOR_COUNT", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.WindowDays < 1 {
		return fmt.Errorf("ANALYSIS_WINDOW_DAYS must be >= 1")
	}
	if c.LookbackDays < 1 {
		return fmt.Errorf("ANALYSIS_LOOKBACK_DAYS must be >= 1")
	}

	// Note: NEWS_API_KEY optional, the RSS feeds need no key
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

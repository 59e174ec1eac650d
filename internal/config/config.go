package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for authentication

	// Store call timeout; no storage call in the wager path may hang
	StoreTimeout time.Duration

	// Rate limiter settings
	OpenWindow       time.Duration
	OpenCeiling      int
	ReadWindow       time.Duration
	ReadCeiling      int
	LimiterCacheSize int

	// Path to the pity configuration file (JSON, per case)
	PityConfigPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		ServiceName:    getEnv("SERVICE_NAME", "settlement-engine"),
		Version:        getEnv("VERSION", "dev"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "casedrop"),
		APIKey:         getEnv("API_KEY", ""),
		PityConfigPath: getEnv("PITY_CONFIG_PATH", "configs/pity.json"),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	storeTimeoutMs, err := getEnvInt("STORE_TIMEOUT_MS", DefaultStoreTimeoutMs)
	if err != nil {
		return nil, err
	}
	cfg.StoreTimeout = time.Duration(storeTimeoutMs) * time.Millisecond

	openWindowSec, err := getEnvInt("RATE_OPEN_WINDOW_SECONDS", DefaultOpenWindowSeconds)
	if err != nil {
		return nil, err
	}
	cfg.OpenWindow = time.Duration(openWindowSec) * time.Second

	cfg.OpenCeiling, err = getEnvInt("RATE_OPEN_CEILING", DefaultOpenCeiling)
	if err != nil {
		return nil, err
	}

	readWindowSec, err := getEnvInt("RATE_READ_WINDOW_SECONDS", DefaultReadWindowSeconds)
	if err != nil {
		return nil, err
	}
	cfg.ReadWindow = time.Duration(readWindowSec) * time.Second

	cfg.ReadCeiling, err = getEnvInt("RATE_READ_CEILING", DefaultReadCeiling)
	if err != nil {
		return nil, err
	}

	cfg.LimiterCacheSize, err = getEnvInt("RATE_LIMITER_CACHE_SIZE", DefaultLimiterCacheSize)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

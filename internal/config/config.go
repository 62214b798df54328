// Package config loads cashplan configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Batch modes accepted by GENERATION_BATCH_MODE.
const (
	BatchModeAtomic   = "atomic"
	BatchModeIsolated = "isolated"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Database
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	MigrationsPath string

	// Generation
	DaysInAdvance      int
	BatchMode          string
	GenerationInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Database
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "cashplan"),
		DBPassword:     getEnv("DB_PASSWORD", "cashplan"),
		DBName:         getEnv("DB_NAME", "cashplan"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
	}

	days, err := parseDays(getEnv("GENERATION_DAYS_IN_ADVANCE", "30"))
	if err != nil {
		return nil, err
	}
	config.DaysInAdvance = days

	mode, err := parseBatchMode(getEnv("GENERATION_BATCH_MODE", BatchModeAtomic))
	if err != nil {
		return nil, err
	}
	config.BatchMode = mode

	interval, err := parseInterval(getEnv("GENERATION_INTERVAL", "1h"))
	if err != nil {
		return nil, err
	}
	config.GenerationInterval = interval

	return config, nil
}

func parseDays(s string) (int, error) {
	days, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid GENERATION_DAYS_IN_ADVANCE %q: %w", s, err)
	}
	if days < 0 || days > 366 {
		return 0, fmt.Errorf("GENERATION_DAYS_IN_ADVANCE must be between 0 and 366, got %d", days)
	}
	return days, nil
}

func parseBatchMode(s string) (string, error) {
	switch mode := strings.ToLower(s); mode {
	case BatchModeAtomic, BatchModeIsolated:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid GENERATION_BATCH_MODE %q: must be atomic or isolated", s)
	}
}

func parseInterval(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid GENERATION_INTERVAL %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("GENERATION_INTERVAL must be positive, got %v", d)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

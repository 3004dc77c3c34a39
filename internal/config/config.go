// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string
	RedisURL    string

	// Security
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	// Matching
	ScoringStrategy string // "difference" (live) or "rank" (legacy)
	DefaultPageSize int
	MaxPageSize     int
	ScoreCacheTTL   time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/alignd?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenExpiry:  getDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenExpiry: getDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),

		ScoringStrategy: getEnv("MATCH_SCORING_STRATEGY", "difference"),
		DefaultPageSize: getInt("MATCH_DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     getInt("MATCH_MAX_PAGE_SIZE", 50),
		ScoreCacheTTL:   getDuration("SCORE_CACHE_TTL", 1*time.Hour),
	}
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.ScoringStrategy != "difference" && c.ScoringStrategy != "rank" {
		return fmt.Errorf("MATCH_SCORING_STRATEGY must be \"difference\" or \"rank\", got %q", c.ScoringStrategy)
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("MATCH_DEFAULT_PAGE_SIZE must be in 1..%d", c.MaxPageSize)
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

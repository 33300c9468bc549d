// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	APIKey      string  // Brokerage API key
	APISecret   string  // Brokerage API secret
	Exchange    string  // Exchange code used to qualify quote identifiers (e.g. "NSE")
	AccessToken string  // Session access token; may also be obtained via the login flow
	TargetValue float64 // Explicit target value override; <= 0 means derive from holdings
	LogLevel    string
	Port        int
	DevMode     bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("KITE_API_KEY", ""),
		APISecret:   getEnv("KITE_API_SECRET", ""),
		Exchange:    getEnv("KITE_EXCHANGE", "NSE"),
		AccessToken: getEnv("KITE_ACCESS_TOKEN", ""),
		TargetValue: getEnvAsFloat("TARGET_VALUE", 0),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnvAsInt("GO_PORT", 8001),
		DevMode:     getEnvAsBool("DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("KITE_API_KEY is required")
	}
	if c.APISecret == "" {
		return fmt.Errorf("KITE_API_SECRET is required")
	}
	if c.Exchange == "" {
		return fmt.Errorf("KITE_EXCHANGE is required")
	}
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

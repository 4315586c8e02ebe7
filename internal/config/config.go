// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"spendwise/internal/currency"
)

// Config holds runtime settings shared by the commands.
type Config struct {
	// Database
	DBPath string

	// Display
	CurrencySymbol string
	ConversionRate float64

	// Logging
	LogLevel string
}

// DefaultDBPath is used when DB_PATH is unset.
const DefaultDBPath = "expenses.db"

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		DBPath:         getEnv("DB_PATH", DefaultDBPath),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", currency.DefaultSymbol),
		ConversionRate: getEnvFloat("CONVERSION_RATE", currency.DefaultRate),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}
	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}
	if math.IsNaN(c.ConversionRate) || math.IsInf(c.ConversionRate, 0) || c.ConversionRate <= 0 {
		errors = append(errors, fmt.Sprintf("invalid conversion rate %v: must be a positive number", c.ConversionRate))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Presenter returns the currency presenter for the configured rate and symbol.
func (c *Config) Presenter() currency.Presenter {
	return currency.Presenter{Rate: c.ConversionRate, Symbol: c.CurrencySymbol}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat returns NaN for unparsable values so Validate reports them.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

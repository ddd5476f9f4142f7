package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates application-wide configuration values.
type Config struct {
	Port                 string
	BaseURL              string
	AdminSecret          string
	StripeSecretKey      string
	PricePerVerification float64
	DatabaseURL          string
	APIKeysFile          string
	LogLevel             string
	LogFormat            string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		BaseURL:         strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:8000"), "/"),
		AdminSecret:     os.Getenv("API_SECRET_KEY"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		APIKeysFile:     getEnv("API_KEYS_FILE", "api_keys_db.json"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	price, err := parsePrice(getEnv("PRICE_PER_VERIFICATION", "0.10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_PER_VERIFICATION value: %w", err)
	}
	cfg.PricePerVerification = price

	return cfg, nil
}

func parsePrice(value string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("expected a dollar amount, got %q", value)
	}
	if price <= 0 {
		return 0, fmt.Errorf("price must be positive, got %q", value)
	}
	return price, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

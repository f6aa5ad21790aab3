// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	DatabaseURL    string
	Port           string
	WorkerPoolSize int
	LoanPeriodDays int
	DailyFineRate  decimal.Decimal
	OTLPEndpoint   string
}

// Load reads configuration from environment variables, applying defaults
// for everything except DATABASE_URL.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	poolSize, err := intEnv("WORKER_POOL_SIZE", 8)
	if err != nil {
		return nil, err
	}
	if poolSize <= 0 {
		return nil, fmt.Errorf("WORKER_POOL_SIZE must be positive, got %d", poolSize)
	}

	loanDays, err := intEnv("LOAN_PERIOD_DAYS", 14)
	if err != nil {
		return nil, err
	}

	rate, err := decimal.NewFromString(getEnv("DAILY_FINE_RATE", "2.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_FINE_RATE: %w", err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("DAILY_FINE_RATE must not be negative")
	}

	return &Config{
		DatabaseURL:    dbURL,
		Port:           getEnv("PORT", "8080"),
		WorkerPoolSize: poolSize,
		LoanPeriodDays: loanDays,
		DailyFineRate:  rate,
		OTLPEndpoint:   os.Getenv("OTLP_ENDPOINT"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

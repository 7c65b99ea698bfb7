package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the auction service.
type Config struct {
	HTTPAddr        string
	ClosingInterval time.Duration
	NotifierTimeout time.Duration
	NotifierURL     string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment (a .env file is loaded first
// if present), applies defaults and validates values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	closingInterval, err := getDuration("CLOSING_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid CLOSING_INTERVAL: %w", err)
	}
	if closingInterval <= 0 {
		return nil, fmt.Errorf("CLOSING_INTERVAL must be positive, got %s", closingInterval)
	}

	notifierTimeout, err := getDuration("NOTIFIER_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFIER_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		HTTPAddr:        getStr("HTTP_ADDR", ":9000"),
		ClosingInterval: closingInterval,
		NotifierTimeout: notifierTimeout,
		NotifierURL:     os.Getenv("NOTIFIER_URL"),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

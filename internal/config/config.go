package config

import (
	"os"
	"strconv"

	"linmod/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Sweep    SweepConfig
}

// DatabaseConfig holds run-ledger connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	APIPort string
	UIPort  string
	GinMode string
}

// DataConfig holds expression data source settings
type DataConfig struct {
	ExpressionFile string
	Sheet          string
}

// SweepConfig holds sweep execution settings
type SweepConfig struct {
	Concurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			Enabled: os.Getenv("DATABASE_URL") != "",
		},
		Server: ServerConfig{
			APIPort: envOr("API_PORT", "8080"),
			UIPort:  envOr("UI_PORT", "8081"),
			GinMode: envOr("GIN_MODE", "release"),
		},
		Data: DataConfig{
			ExpressionFile: os.Getenv("EXPRESSION_FILE"),
			Sheet:          envOr("EXPRESSION_SHEET", "Sheet1"),
		},
		Sweep: SweepConfig{
			Concurrency: 4,
		},
	}

	if v := os.Getenv("SWEEP_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.ConfigInvalid("SWEEP_CONCURRENCY must be a positive integer")
		}
		cfg.Sweep.Concurrency = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

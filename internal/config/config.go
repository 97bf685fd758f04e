// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultJWTSecret = "dev-secret-change-me"
	defaultJWTExpiry = 24 * time.Hour
)

// Config holds application configuration.
type Config struct {
	Port string

	// DBDriver selects the storage backend: "sqlite" or "postgres".
	DBDriver    string
	DBPath      string
	DatabaseURL string

	JWTSecret string
	JWTExpiry time.Duration

	// AppURL is the public base URL of the web client, used in collection links.
	AppURL string

	CurrencyCode     string
	CurrencyDecimals int32

	LogLevel string

	// Warnings lists settings that fell back to defaults. Load runs before
	// logging is set up, so the caller logs them.
	Warnings []string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "./data/splitcollect.db")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY", defaultJWTExpiry.String())
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("CURRENCY_CODE", "INR")
	v.SetDefault("CURRENCY_DECIMALS", 2)
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("PORT"),
		DBDriver:         strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:           v.GetString("DB_PATH"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AppURL:           v.GetString("APP_URL"),
		CurrencyCode:     strings.ToUpper(v.GetString("CURRENCY_CODE")),
		CurrencyDecimals: v.GetInt32("CURRENCY_DECIMALS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
		cfg.Warnings = append(cfg.Warnings, "JWT_SECRET not set, using insecure default")
	}

	expiry := v.GetString("JWT_EXPIRY")
	d, err := time.ParseDuration(expiry)
	if err != nil || d <= 0 {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid JWT_EXPIRY %q, using default %s", expiry, defaultJWTExpiry))
		d = defaultJWTExpiry
	}
	cfg.JWTExpiry = d

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER is %s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.CurrencyDecimals < 0 || cfg.CurrencyDecimals > 4 {
		return nil, fmt.Errorf("CURRENCY_DECIMALS must be between 0 and 4, got %d", cfg.CurrencyDecimals)
	}

	return cfg, nil
}

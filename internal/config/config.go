// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/celestiaorg/intakeflow/internal/constants"
	"github.com/celestiaorg/intakeflow/internal/db"
)

// Config is the server configuration
type Config struct {
	Port         string   `env:"INTAKEFLOW_PORT" envDefault:"8080" validate:"required,numeric"`
	APIKey       string   `env:"INTAKEFLOW_API_KEY" validate:"required"`
	APIKeyHeader string   `env:"INTAKEFLOW_API_KEY_HEADER" envDefault:"x-api-key" validate:"required"`
	CORSOrigins  string   `env:"INTAKEFLOW_CORS_ORIGINS" envDefault:"*"`
	SeedDemo     bool     `env:"INTAKEFLOW_SEED_DEMO" envDefault:"false"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
	Database     Database `envPrefix:"DB_"`
}

// Database holds the store connection settings
type Database struct {
	Driver   string `env:"DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	Path     string `env:"PATH" envDefault:"intakeflow.db"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432" validate:"min=1,max=65535"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME" envDefault:"intakeflow"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
}

// Options converts the settings into store options
func (d Database) Options() db.Options {
	return db.Options{
		Driver:   d.Driver,
		Path:     d.Path,
		Host:     d.Host,
		User:     d.User,
		Password: d.Password,
		DBName:   d.Name,
		Port:     d.Port,
		SSLMode:  d.SSLMode,
	}
}

var validate = validator.New()

// LoadDotEnv loads a .env file if one exists. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	// The dev key applies only when the variable is unset; an explicit empty key fails validation
	cfg.APIKey = GetEnv(constants.EnvAPIKey, constants.DefaultAPIKey)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

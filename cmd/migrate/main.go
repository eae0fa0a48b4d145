// This file is used to run database migrations
// How to run:
// go run ./cmd/migrate              # Run all pending migrations
// go run ./cmd/migrate -down        # Rollback all migrations
// go run ./cmd/migrate -steps 1     # Run one migration
// go run ./cmd/migrate -steps -1    # Rollback one migration
// go run ./cmd/migrate -force 1     # Force version 1
package main

import (
	"flag"
	"os"

	"github.com/celestiaorg/intakeflow/internal/config"
	"github.com/celestiaorg/intakeflow/internal/constants"
	"github.com/celestiaorg/intakeflow/internal/db"
	"github.com/celestiaorg/intakeflow/internal/db/migrations"
	"github.com/celestiaorg/intakeflow/internal/logger"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitializeAndConfigure(cfg.LogLevel)

	defaults := migrations.DefaultConfig()
	var (
		dbURLFlag = flag.String("db", config.GetEnv(constants.EnvDatabaseURL, ""), "Database URL (env: DATABASE_URL, defaults to the DB_* settings)")
		down      = flag.Bool("down", false, "Roll back migrations")
		steps     = flag.Int("steps", 0, "Number of migrations to apply (up or down)")
		force     = flag.Int("force", -1, "Force a specific version")
		retries   = flag.Int("retries", defaults.RetryAttempts, "Number of connection retries")
		retryWait = flag.Duration("retry-wait", defaults.RetryDelay, "Wait time between retries")
	)
	flag.Parse()

	// Use command line flag if provided, otherwise use env vars
	dbURL := db.URL(cfg.Database.Options())
	if *dbURLFlag != "" {
		dbURL = *dbURLFlag
	}

	service, err := migrations.NewMigrationService(migrations.Config{
		DatabaseURL:   dbURL,
		RetryAttempts: *retries,
		RetryDelay:    *retryWait,
	})
	if err != nil {
		logger.Fatalf("Failed to create migration service: %v", err)
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warnf("Failed to close migration service: %v", err)
		}
	}()

	if err := run(service, *force, *steps, *down); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(service *migrations.MigrationService, force, steps int, down bool) error {
	// Handle force version
	if force >= 0 {
		if err := service.Force(force); err != nil {
			return err
		}
		logger.Infof("Successfully forced version to %d", force)
		return nil
	}

	// Handle steps
	if steps != 0 {
		if err := service.Steps(steps); err != nil {
			return err
		}
		logger.Infof("Successfully applied %d steps", steps)
		return nil
	}

	if down {
		if err := service.Down(); err != nil {
			return err
		}
	} else {
		if err := service.Up(); err != nil {
			return err
		}
	}

	version, dirty, err := service.Version()
	if err != nil {
		logger.Warnf("Could not get final version: %v", err)
	} else {
		logger.Infof("Current migration version: %d (dirty: %v)", version, dirty)
	}
	return nil
}

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/intakeflow/internal/app"
	"github.com/celestiaorg/intakeflow/internal/config"
	"github.com/celestiaorg/intakeflow/internal/db"
	"github.com/celestiaorg/intakeflow/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown
const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitializeAndConfigure(cfg.LogLevel)

	opts := cfg.Database.Options()
	opts.SeedDemo = cfg.SeedDemo
	if cfg.LogLevel == "debug" || cfg.LogLevel == "trace" {
		opts.LogLevel = gormlogger.Info
	}

	conn, err := db.New(opts)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	server := app.NewApp(conn, app.Options{
		APIKey:       cfg.APIKey,
		APIKeyHeader: cfg.APIKeyHeader,
		CORSOrigins:  cfg.CORSOrigins,
	})

	go func() {
		logger.Infof("IntakeFlow API listening on :%s", cfg.Port)
		if err := server.Listen(":" + cfg.Port); err != nil {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server exited")
}

// Package db provides database connectivity and operations
package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/intakeflow/internal/db/models"
	"github.com/celestiaorg/intakeflow/internal/logger"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database configuration constants
const (
	// DefaultDriver is the default database driver
	DefaultDriver = DriverSQLite
	// DefaultPath is the default SQLite database file
	DefaultPath = "intakeflow.db"
	// DefaultHost is the default database host
	DefaultHost = "localhost"
	// DefaultPort is the default database port
	DefaultPort = 5432
	// DefaultUser is the default database user
	DefaultUser = "postgres"
	// DefaultPassword is the default database password
	DefaultPassword = "postgres"
	// DefaultDBName is the default database name
	DefaultDBName = "intakeflow"
	// DefaultSSLMode is the default postgres sslmode
	DefaultSSLMode = "disable"
)

// pgUniqueViolation is the SQLSTATE postgres reports for unique index violations
const pgUniqueViolation = "23505"

// Options represents database connection configuration options
type Options struct {
	Driver   string
	Path     string
	Host     string
	User     string
	Password string
	DBName   string
	Port     int
	SSLMode  string
	LogLevel gormlogger.LogLevel
	SeedDemo bool
}

// New creates a new database connection with the given options
func New(opts Options) (*gorm.DB, error) {
	opts = setDefaults(opts)

	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	newLogger := gormlogger.New(
		logger.Logger(),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
		},
	)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey
	config := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", opts.Driver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}

	if opts.SeedDemo {
		if err := SeedDemoProjects(db); err != nil {
			// Seeding is a convenience; a failure must not block startup
			logger.Warnf("Failed to seed demo projects: %v", err)
		}
	}

	return db, nil
}

// DSN builds the postgres connection string for the given options
func DSN(opts Options) string {
	opts = setDefaults(opts)
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		opts.Host, opts.User, opts.Password, opts.DBName, opts.Port, opts.SSLMode)
}

// URL builds the postgres URL form used by the migration tool
func URL(opts Options) string {
	opts = setDefaults(opts)
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		opts.User, opts.Password, opts.Host, opts.Port, opts.DBName, opts.SSLMode)
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverSQLite:
		return sqlite.Open(opts.Path), nil
	case DriverPostgres:
		return postgres.Open(DSN(opts)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// IsDuplicateKeyError reports whether err is a unique constraint violation
// raised by the store, whichever driver produced it.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func setDefaults(opts Options) Options {
	if opts.Driver == "" {
		opts.Driver = DefaultDriver
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.User == "" {
		opts.User = DefaultUser
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	if opts.DBName == "" {
		opts.DBName = DefaultDBName
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.SSLMode == "" {
		opts.SSLMode = DefaultSSLMode
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = gormlogger.Warn
	}
	return opts
}

// SeedDemoProjects inserts a few sample projects when the store is empty.
func SeedDemoProjects(db *gorm.DB) error {
	logger.Info("Ensuring demo projects exist...")

	var count int64
	if err := db.Model(&models.Project{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	if count > 0 {
		logger.Debugf("Store already holds %d projects, skipping demo seed", count)
		return nil
	}

	projects := []models.Project{
		{
			Name:          "General and Admin",
			Portfolio:     "Corporate",
			Status:        models.ProjectStatusInProgress,
			PlannerTaskID: "PLN-001",
			StartDate:     date(2024, time.January, 1),
			EndDate:       date(2027, time.December, 31),
		},
		{
			Name:          "Innovations",
			Portfolio:     "R&D",
			Status:        models.ProjectStatusApproved,
			PlannerTaskID: "PLN-002",
			StartDate:     date(2024, time.February, 6),
			EndDate:       date(2026, time.November, 26),
		},
		{
			Name:          "Information Technology Portfolio",
			Portfolio:     "IT",
			Status:        models.ProjectStatusInProgress,
			PlannerTaskID: "PLN-003",
			StartDate:     date(2024, time.December, 19),
			EndDate:       date(2026, time.March, 19),
		},
	}
	if err := db.Create(&projects).Error; err != nil {
		return fmt.Errorf("failed to seed demo projects: %w", err)
	}

	logger.Infof("Seeded %d demo projects", len(projects))
	return nil
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

package db

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

func openTestDB(t *testing.T, seed bool) *gorm.DB {
	t.Helper()
	conn, err := New(Options{
		Driver:   DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "intakeflow-test.db"),
		LogLevel: gormlogger.Silent,
		SeedDemo: seed,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestNewMigratesSchema(t *testing.T) {
	conn := openTestDB(t, false)

	assert.True(t, conn.Migrator().HasTable(&models.Project{}))
	assert.True(t, conn.Migrator().HasIndex(&models.Project{}, "idx_projects_planner_task_id"))

	var count int64
	require.NoError(t, conn.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(Options{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSeedDemoProjects(t *testing.T) {
	conn := openTestDB(t, true)

	var projects []models.Project
	require.NoError(t, conn.Order("planner_task_id").Find(&projects).Error)
	require.Len(t, projects, 3)
	assert.Equal(t, "PLN-001", projects[0].PlannerTaskID)
	assert.Equal(t, "Corporate", projects[0].Portfolio)
	assert.Equal(t, models.ProjectStatusApproved, projects[1].Status)

	// A second seed leaves a populated store untouched
	require.NoError(t, SeedDemoProjects(conn))
	var count int64
	require.NoError(t, conn.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestDuplicatePlannerTaskIDIsDetected(t *testing.T) {
	conn := openTestDB(t, false)

	first := &models.Project{Name: "a", PlannerTaskID: "PLN-9"}
	require.NoError(t, conn.Create(first).Error)

	err := conn.Create(&models.Project{Name: "b", PlannerTaskID: "PLN-9"}).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKeyError(err))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("create project: %w", err)))
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped gorm duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres check violation", err: &pgconn.PgError{Code: "23514"}, want: false},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: true},
		{name: "sqlite not null", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, want: false},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKeyError(tt.err))
		})
	}
}

func TestConnectionStrings(t *testing.T) {
	opts := Options{Host: "db", User: "u", Password: "p", DBName: "intake", Port: 6543}

	assert.Equal(t, "host=db user=u password=p dbname=intake port=6543 sslmode=disable", DSN(opts))
	assert.Equal(t, "postgres://u:p@db:6543/intake?sslmode=disable", URL(opts))
}

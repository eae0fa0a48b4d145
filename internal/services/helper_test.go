package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/celestiaorg/intakeflow/internal/db/models"
	"github.com/celestiaorg/intakeflow/internal/db/repos"
)

// TestSetup sets up an in-memory database and repositories for testing
type TestSetup struct {
	DB             *gorm.DB
	ProjectRepo    *repos.ProjectRepository
	ProjectService *Project
	ctx            context.Context
}

// NewTestSetup creates a new test setup with in-memory database
func NewTestSetup(t *testing.T) *TestSetup {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to create in-memory database")

	err = db.AutoMigrate(models.AllModels()...)
	require.NoError(t, err, "Failed to run migrations")

	projectRepo := repos.NewProjectRepository(db)
	ts := &TestSetup{
		DB:             db,
		ProjectRepo:    projectRepo,
		ProjectService: NewProjectService(projectRepo),
		ctx:            context.Background(),
	}
	t.Cleanup(ts.CleanUp)
	return ts
}

// CleanUp cleans up resources after test
func (ts *TestSetup) CleanUp() {
	sqlDB, err := ts.DB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (ts *TestSetup) count(t *testing.T) int64 {
	t.Helper()
	n, err := ts.ProjectService.Count(ts.ctx)
	require.NoError(t, err)
	return n
}

package test

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/celestiaorg/intakeflow/internal/db"
	"github.com/celestiaorg/intakeflow/internal/db/repos"
)

// NewFileBasedTestDB creates a new file-based SQLite database for testing.
// It returns the database connection and the path to the temporary directory.
func NewFileBasedTestDB() (*gorm.DB, string, error) {
	tmpDir, err := os.MkdirTemp("", "intakeflow_test")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	conn, err := db.New(db.Options{
		Driver:   db.DriverSQLite,
		Path:     filepath.Join(tmpDir, "intakeflow_test.db"),
		LogLevel: gormlogger.Silent,
	})
	if err != nil {
		// Try to clean up the temporary directory, but don't fail if cleanup fails
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			fmt.Printf("Warning: failed to remove temporary directory after database error: %v\n", rmErr)
		}
		return nil, "", err
	}
	return conn, tmpDir, nil
}

// SetupTestDB configures the suite with a fresh file-based database
func SetupTestDB(suite *Suite) {
	conn, tmpDir, err := NewFileBasedTestDB()
	suite.Require().NoError(err, "Failed to create test database")

	suite.DB = conn
	suite.ProjectRepo = repos.NewProjectRepository(conn)

	originalCleanup := suite.cleanup
	suite.cleanup = func() {
		if originalCleanup != nil {
			originalCleanup()
		}
		_ = os.RemoveAll(tmpDir)
	}
}

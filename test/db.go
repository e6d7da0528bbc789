package test

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devboard-esn/devboard/internal/db"
	"github.com/devboard-esn/devboard/internal/db/repos"
)

// NewFileBasedTestDB creates a new file-based SQLite database for testing.
// It returns the database connection and the path to the temporary directory.
func NewFileBasedTestDB() (*gorm.DB, string, error) {
	tmpDir, err := os.MkdirTemp("", "devboard_test")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	dbPath := filepath.Join(tmpDir, "devboard_test.db")
	conn, err := db.Open(sqlite.Open(dbPath), logger.Silent)
	if err != nil {
		// Try to clean up the temporary directory, but don't fail if cleanup fails
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			fmt.Printf("Warning: failed to remove temporary directory after database error: %v\n", rmErr)
		}
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}
	return conn, tmpDir, nil
}

// CleanupTestDB closes the database connection and removes the temporary directory.
func CleanupTestDB(conn *gorm.DB, tmpDir string) {
	if err := db.Close(conn); err != nil {
		fmt.Printf("Error closing database connection: %v\n", err)
	}
	if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
		fmt.Printf("Error removing temporary directory: %v\n", rmErr)
	}
}

// SetupTestDB configures the test suite to use the provided database connection.
// If nil is provided, a new file-based database will be created.
func SetupTestDB(suite *Suite, database *gorm.DB) {
	if database != nil {
		suite.DB = database
		suite.Require().NoError(db.Migrate(suite.DB), "Failed to run database migrations")
	} else {
		dbConn, tmpDir, err := NewFileBasedTestDB()
		suite.Require().NoError(err, "Failed to create file-based database")
		suite.DB = dbConn

		oldCleanup := suite.cleanup
		suite.cleanup = func() {
			if oldCleanup != nil {
				oldCleanup()
			}
			CleanupTestDB(suite.DB, tmpDir)
		}
	}

	suite.ProjectRepo = repos.NewProjectRepository(suite.DB)
}

package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devboard-esn/devboard/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ctx         context.Context
	projectRepo *ProjectRepository
	counter     int
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Each test gets its own in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", s.T().Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Project{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.projectRepo = NewProjectRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// createTestProject persists a project created at the given time
func (s *DBRepositoryTestSuite) createTestProject(createdAt time.Time) *models.Project {
	s.counter++
	project := &models.Project{
		Name:      fmt.Sprintf("test-project-%d", s.counter),
		Client:    "Acme",
		Status:    "draft",
		CreatedAt: createdAt,
	}
	err := s.projectRepo.Create(s.ctx, project)
	s.Require().NoError(err)
	return project
}

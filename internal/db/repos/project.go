// Package repos provides database repository implementations
package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/devboard-esn/devboard/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database. The id and timestamps are
// filled in on the passed row.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database.
// It returns gorm.ErrRecordNotFound if there is no such project.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where(models.ProjectIDField+" = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s DESC, %s DESC", models.ProjectCreatedAtField, models.ProjectIDField)).
		Find(&projects).Error
	return projects, err
}

// Delete deletes a project by ID from the database.
// It returns gorm.ErrRecordNotFound if no row was removed.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where(models.ProjectIDField+" = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

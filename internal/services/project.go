// Package services provides business logic implementation for the API
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/devboard-esn/devboard/internal/db/models"
	"github.com/devboard-esn/devboard/internal/db/repos"
	apimodels "github.com/devboard-esn/devboard/pkg/models"
)

var (
	// ErrProjectNotFound is returned when no project has the requested id
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidProject is returned when a draft fails validation
	ErrInvalidProject = errors.New("invalid project")
)

// Project handles project-related operations
type Project struct {
	repo *repos.ProjectRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository) *Project {
	return &Project{
		repo: repo,
	}
}

// Create validates the draft and persists a new project. The id, status
// default and creation time are assigned here, never by the caller.
func (s *Project) Create(ctx context.Context, draft apimodels.Draft) (apimodels.Project, error) {
	draft = draft.WithDefaults()
	if err := draft.Validate(); err != nil {
		return apimodels.Project{}, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}

	row := models.NewProject(draft)
	if err := s.repo.Create(ctx, row); err != nil {
		return apimodels.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return row.ToAPI(), nil
}

// Get retrieves a project by id
func (s *Project) Get(ctx context.Context, id string) (apimodels.Project, error) {
	row, err := s.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apimodels.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return apimodels.Project{}, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	return row.ToAPI(), nil
}

// List retrieves all projects, newest first
func (s *Project) List(ctx context.Context) ([]apimodels.Project, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]apimodels.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, row.ToAPI())
	}
	return projects, nil
}

// Delete deletes a project by id
func (s *Project) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

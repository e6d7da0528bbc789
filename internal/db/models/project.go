// Package models contains the database rows persisted by the API server
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apimodels "github.com/devboard-esn/devboard/pkg/models"
)

// Field names for project model
const (
	// ProjectCreatedAtField is the column projects are listed by
	ProjectCreatedAtField = "created_at"
	// ProjectIDField is the primary key column
	ProjectIDField = "id"
)

// Project is a row of the projects table
type Project struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Client      string    `gorm:"type:varchar(255);not null"`
	Status      string    `gorm:"type:varchar(50);not null;default:draft;index"`
	Description string    `gorm:"type:text;default:''"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// NewProject builds a row from a draft, applying the draft defaults
func NewProject(draft apimodels.Draft) *Project {
	draft = draft.WithDefaults()
	return &Project{
		Name:        draft.Name,
		Client:      draft.Client,
		Status:      draft.Status.String(),
		Description: draft.Description,
	}
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.Client == "" {
		return fmt.Errorf("project client cannot be empty")
	}
	if _, err := apimodels.ParseProjectStatus(p.Status); err != nil {
		return err
	}
	return nil
}

// BeforeCreate is a GORM hook that assigns the id and default status
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = apimodels.StatusDraft.String()
	}
	return p.Validate()
}

// ToAPI converts the row to the type served by the API
func (p Project) ToAPI() apimodels.Project {
	return apimodels.Project{
		ID:          p.ID,
		Name:        p.Name,
		Client:      p.Client,
		Description: p.Description,
		Status:      apimodels.ProjectStatus(p.Status),
		CreatedAt:   p.CreatedAt.UTC(),
	}
}
